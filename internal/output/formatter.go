package output

import (
	"fmt"
	"sort"
	"strings"

	http "github.com/wesleyorama2/apitopy/http"
)

// Formatter renders trace lines, responses and errors for the terminal.
type Formatter struct {
	Format  OutputFormat
	Verbose bool
	NoColor bool

	scheme *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(format OutputFormat, verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Format:  format,
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatTrace renders the "VERB URL" line written before a request.
func (f *Formatter) FormatTrace(verb, url string) string {
	return fmt.Sprintf("%s %s\n", f.scheme.Verb.Sprint(verb), f.scheme.URL.Sprint(url))
}

// FormatResponseHead renders status, timing (verbose only) and headers.
func (f *Formatter) FormatResponseHead(resp *http.Response) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	switch {
	case resp.IsSuccess():
		statusColor = f.scheme.StatusOK
	case resp.IsRedirect():
		statusColor = f.scheme.StatusWarn
	}
	fmt.Fprintf(&buf, "%s (%dms)\n", statusColor.Sprint(resp.Status), resp.TotalMillis())

	if f.Verbose {
		t := resp.Timing
		buf.WriteString("Timing:\n")
		fmt.Fprintf(&buf, "  DNS Lookup:         %dms\n", t.DNSLookupTime.Milliseconds())
		fmt.Fprintf(&buf, "  TCP Connection:     %dms\n", t.TCPConnectTime.Milliseconds())
		fmt.Fprintf(&buf, "  TLS Handshake:      %dms\n", t.TLSHandshakeTime.Milliseconds())
		fmt.Fprintf(&buf, "  Time to First Byte: %dms\n", t.TimeToFirstByte.Milliseconds())
		fmt.Fprintf(&buf, "  Content Transfer:   %dms\n", t.ContentTransferTime.Milliseconds())
	}

	keys := make([]string, 0, len(resp.Headers))
	for key := range resp.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, value := range resp.Headers[key] {
			fmt.Fprintf(&buf, "%s: %s\n", f.scheme.HeaderKey.Sprint(key), value)
		}
	}
	buf.WriteString("\n")

	return buf.String()
}

// FormatError renders err with a leading error icon.
func (f *Formatter) FormatError(err error) string {
	return fmt.Sprintf("%s %s\n", ErrorIcon(f.NoColor), f.scheme.Error.Sprint(err.Error()))
}

// FormatSuccess renders a message with a leading success icon.
func (f *Formatter) FormatSuccess(message string) string {
	return fmt.Sprintf("%s %s\n", SuccessIcon(f.NoColor), f.scheme.Success.Sprint(message))
}
