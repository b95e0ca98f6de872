package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/log"
)

//go:embed assets/latest.html
var latestTmpl string

type Params struct {
	Image     string
	Prompt    string
	Generated string
}

// Templator renders the latest.html page shown when a browser hits the
// distribution directly.
type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(*do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("latest").Parse(latestTmpl))
	})

	log.FromContextOrDiscard(ctx).WithGroup("templator").Info("generating page")

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
