package build

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"stc/common"
	"stc/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Name       string
	Class      string
	Kind       string
	Format     string
	Ext        string
	SourceFile string
}

func buildValues(name config.TemplateFieldName, spec TemplateSpec, class, src string, format common.DumpFmt) Values {
	return Values{
		Context:    string(name),
		Name:       spec.Name,
		Class:      class,
		Kind:       spec.Kind.String(),
		Format:     format.String(),
		Ext:        format.Ext(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
