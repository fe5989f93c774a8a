package build

import (
	"strings"
	"testing"

	"stc/common"
	"stc/config"
)

func TestBuildValues(t *testing.T) {
	spec := TemplateSpec{Name: "button", Kind: common.TemplateKindStyle, CSS: "color: red;"}

	values := buildValues(config.OutputNameTemplateFieldName, spec, "sc-button-1a2b3c4d", "pack/ui/templates.yaml", common.DumpFmtCss)

	if values.Context != string(config.OutputNameTemplateFieldName) {
		t.Errorf("Context = %q, want %q", values.Context, string(config.OutputNameTemplateFieldName))
	}
	if values.Name != "button" {
		t.Errorf("Name = %q, want %q", values.Name, "button")
	}
	if values.Class != "sc-button-1a2b3c4d" {
		t.Errorf("Class = %q, want %q", values.Class, "sc-button-1a2b3c4d")
	}
	if values.Kind != "style" {
		t.Errorf("Kind = %q, want %q", values.Kind, "style")
	}
	if values.Format != "css" {
		t.Errorf("Format = %q, want %q", values.Format, "css")
	}
	if values.Ext != ".css" {
		t.Errorf("Ext = %q, want %q", values.Ext, ".css")
	}
	if values.SourceFile != "templates" {
		t.Errorf("SourceFile = %q, want %q", values.SourceFile, "templates")
	}
}

func TestExpandTemplate_SimpleText(t *testing.T) {
	result, err := expandTemplate(config.OutputNameTemplateFieldName, "simple-text", Values{})
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "simple-text" {
		t.Errorf("expandTemplate() = %q, want %q", result, "simple-text")
	}
}

func TestExpandTemplate_Fields(t *testing.T) {
	values := Values{Name: "button", Ext: ".css"}

	result, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Name }}{{ .Ext }}", values)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "button.css" {
		t.Errorf("expandTemplate() = %q, want %q", result, "button.css")
	}
}

func TestExpandTemplate_SprigFunctions(t *testing.T) {
	values := Values{Name: "button"}

	result, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Name | upper }}", values)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "BUTTON" {
		t.Errorf("expandTemplate() = %q, want %q", result, "BUTTON")
	}
}

func TestExpandTemplate_Subdirs(t *testing.T) {
	values := Values{Name: "button", Kind: "style", Ext: ".css"}

	result, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Kind }}/{{ .Name }}{{ .Ext }}", values)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "style/button.css" {
		t.Errorf("expandTemplate() = %q, want %q", result, "style/button.css")
	}
}

func TestExpandTemplate_ParseError(t *testing.T) {
	_, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Name", Values{})
	if err == nil {
		t.Fatal("Expected error for malformed template, got nil")
	}
	if !strings.Contains(err.Error(), "unable to parse template field") {
		t.Errorf("Error = %v, expected parse failure", err)
	}
}

func TestExpandTemplate_ExecError(t *testing.T) {
	_, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Missing }}", Values{})
	if err == nil {
		t.Fatal("Expected error for unknown field, got nil")
	}
}
