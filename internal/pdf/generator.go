package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"go-fixture-summary/internal/models"

	"github.com/playwright-community/playwright-go"
)

//go:embed templates/match.html
var templates embed.FS

// Generator renders match summaries as printable PDF reports
type Generator struct {
	tmpl    *template.Template
	browser playwright.Browser
}

type reportData struct {
	Summary   *models.MatchSummary
	Narrative string
}

// NewGenerator parses the embedded report template. browser may be nil when
// only RenderHTML is needed.
func NewGenerator(browser playwright.Browser) (*Generator, error) {
	funcMap := template.FuncMap{
		"deref": models.Deref,
		"teams": func(s *models.Statistics) []models.TeamStats {
			return []models.TeamStats{s.HomeTeam, s.AwayTeam}
		},
	}

	tmpl, err := template.New("match.html").Funcs(funcMap).ParseFS(templates, "templates/match.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Generator{tmpl: tmpl, browser: browser}, nil
}

// RenderHTML executes the report template.
func (g *Generator) RenderHTML(summary *models.MatchSummary, narrative string) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, reportData{Summary: summary, Narrative: narrative}); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Generate renders the report and prints it to PDF in a fresh browser page.
func (g *Generator) Generate(summary *models.MatchSummary, narrative string) ([]byte, error) {
	if g.browser == nil {
		return nil, fmt.Errorf("no browser available for PDF rendering")
	}
	htmlContent, err := g.RenderHTML(summary, narrative)
	if err != nil {
		return nil, err
	}

	page, err := g.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create new page: %w", err)
	}
	defer page.Close()

	// Set the generated HTML content into the browser page
	if err := page.SetContent(htmlContent, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, fmt.Errorf("could not set page content: %w", err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String("1cm"),
			Bottom: playwright.String("1cm"),
			Left:   playwright.String("1cm"),
			Right:  playwright.String("1cm"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate PDF: %w", err)
	}

	return pdfBytes, nil
}

// SaveToFile is a helper function to directly save generated PDF to disk
func SaveToFile(pdfBytes []byte, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}

	return os.WriteFile(outputPath, pdfBytes, 0644)
}
