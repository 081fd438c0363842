package pipeline

import (
	"fmt"
	"os"
	"regexp"
)

// dataScriptRe locates the placeholder block the static page reserves for
// the summary JSON.
var dataScriptRe = regexp.MustCompile(
	`(?s)(<script\s+id="survey-data"\s+type="application/json">)(.*?)(</script>)`)

// EmbedSummary replaces the inner content of the survey-data script tag in
// the HTML file at htmlPath with jsonText. Everything outside the tag is
// preserved byte for byte. When the tag is missing the file is left
// untouched and an error is returned; the run must fail rather than publish
// a page without data.
func EmbedSummary(htmlPath string, jsonText []byte) error {
	html, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}

	loc := dataScriptRe.FindSubmatchIndex(html)
	if loc == nil {
		return fmt.Errorf(`could not find <script id="survey-data" type="application/json"> tag in %s`, htmlPath)
	}

	// loc[4]:loc[5] is the tag's inner content (capture group 2).
	patched := make([]byte, 0, len(html)-(loc[5]-loc[4])+len(jsonText))
	patched = append(patched, html[:loc[4]]...)
	patched = append(patched, jsonText...)
	patched = append(patched, html[loc[5]:]...)

	if err := os.WriteFile(htmlPath, patched, 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	fmt.Printf("💾 Embedded %d bytes of JSON into %s\n", len(jsonText), htmlPath)
	return nil
}
