// Package config loads apitopy profile files.
//
// A profile file names one or more target APIs and the options used to
// reach them. YAML and JSON are both accepted; the format is chosen by file
// extension.
//
//	default: sprintly
//	profiles:
//	  sprintly:
//	    baseUrl: https://sprint.ly/api/
//	    suffix: .json
//	    timeout: 10s
//	    auth:
//	      username: ${SPRINTLY_USER}
//	      password: ${SPRINTLY_TOKEN}
//	  local:
//	    baseUrl: https://localhost:8443/
//	    verifyTls: false
//	    ensureSlash: true
//	    headers:
//	      X-Debug: "1"
//
// ${VAR} references in string fields are expanded from the environment when
// the file is parsed.
//
// Basic Usage:
//
//	cfg, err := config.LoadConfig(config.DefaultPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	profile, err := cfg.Profile("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	api, err := profile.NewAPI()
package config
