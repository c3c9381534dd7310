package generator

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/naming"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// stubTemplates holds one template per output language, named
// "stub.<ext>.tmpl".
var stubTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// StubKind is one of the three per-module source stubs.
type StubKind int

const (
	Controller StubKind = iota
	Service
	Route
)

// StubKinds lists the stubs in emission order.
var StubKinds = []StubKind{Controller, Service, Route}

func (k StubKind) String() string {
	switch k {
	case Controller:
		return "controller"
	case Service:
		return "service"
	case Route:
		return "route"
	default:
		return fmt.Sprintf("StubKind(%d)", int(k))
	}
}

// Label is the word used in the factory name; routes are built by a router.
func (k StubKind) Label() string {
	if k == Route {
		return "router"
	}
	return k.String()
}

// Factory is the factory function the stub calls, e.g. "createCoreRouter".
func (k StubKind) Factory() string {
	return "createCore" + naming.Title(k.Label())
}

// Folder is the directory under the module base path, e.g. "routes".
func (k StubKind) Folder() string {
	return k.String() + "s"
}

// stubData feeds the stub templates.
type stubData struct {
	Name    string // singular module name
	Label   string
	Factory string
	UID     string
}

// SupportedExtension reports whether a stub template exists for ext.
func SupportedExtension(ext string) bool {
	return stubTemplates.Lookup(templateName(ext)) != nil
}

// RenderStub renders the stub of kind for module info in language ext
// ("js" or "ts").
func RenderStub(info naming.ModuleInfo, kind StubKind, ext string) ([]byte, error) {
	t := stubTemplates.Lookup(templateName(ext))
	if t == nil {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "no stub template for extension %q", ext)
	}

	var buf bytes.Buffer
	err := t.Execute(&buf, stubData{
		Name:    info.SingularName,
		Label:   kind.Label(),
		Factory: kind.Factory(),
		UID:     info.UID(),
	})
	if err != nil {
		return nil, fmt.Errorf("render %s stub for %s: %w", kind, info.SingularName, err)
	}
	return buf.Bytes(), nil
}

// StubPath is <basePath>/<kind>s/<singular>.<ext>.
func StubPath(info naming.ModuleInfo, kind StubKind, ext string) string {
	return info.BasePath + "/" + kind.Folder() + "/" + info.SingularName + "." + ext
}

func templateName(ext string) string {
	return "stub." + ext + ".tmpl"
}
