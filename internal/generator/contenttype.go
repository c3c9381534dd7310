package generator

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/koustreak/schemagen/internal/mapping"
	"github.com/koustreak/schemagen/internal/naming"
	"github.com/koustreak/schemagen/internal/schema"
)

// Set is a set of column names. Names are matched case-insensitively, as
// MySQL treats column names.
type Set map[string]struct{}

// NewSet builds a Set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[strings.ToLower(n)] = struct{}{}
	}
	return s
}

// Has reports whether name is in s, ignoring case.
func (s Set) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Union returns a new Set holding s and names.
func (s Set) Union(names ...string) Set {
	out := make(Set, len(s)+len(names))
	for n := range s {
		out[n] = struct{}{}
	}
	for _, n := range names {
		out[strings.ToLower(n)] = struct{}{}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// excludedColumns are identity and audit columns the target framework
// manages itself.
var excludedColumns = []string{
	"id",
	"created_at",
	"updated_at",
	"published_at",
	"locale",
	"created_by_id",
	"updated_by_id",
	"document_id",
}

// DefaultExclude returns a fresh copy of the identity/audit exclusion set.
func DefaultExclude() Set {
	return NewSet(excludedColumns...)
}

// ContentType is the schema.json descriptor of one API module.
// Field order matches the JSON output.
type ContentType struct {
	Kind           string             `json:"kind"`
	CollectionName string             `json:"collectionName"`
	Info           Info               `json:"info"`
	PluginOptions  map[string]any     `json:"pluginOptions"`
	Options        ContentTypeOptions `json:"options"`
	Attributes     Attributes         `json:"attributes"`
}

// Info names the content type.
type Info struct {
	SingularName string `json:"singularName"`
	PluralName   string `json:"pluralName"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
}

// ContentTypeOptions are the content-type level switches.
type ContentTypeOptions struct {
	DraftAndPublish bool `json:"draftAndPublish"`
}

// Attribute is one field of the content type.
type Attribute struct {
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

// NamedAttribute pairs an attribute with its column name.
type NamedAttribute struct {
	Name string
	Attribute
}

// Attributes keeps attributes in column order and marshals as a JSON
// object with keys in that order.
type Attributes []NamedAttribute

// Get returns the attribute called name.
func (a Attributes) Get(name string) (Attribute, bool) {
	for _, na := range a {
		if na.Name == name {
			return na.Attribute, true
		}
	}
	return Attribute{}, false
}

// Names returns attribute names in order.
func (a Attributes) Names() []string {
	out := make([]string, len(a))
	for i, na := range a {
		out[i] = na.Name
	}
	return out
}

// MarshalJSON writes an object whose key order follows the slice.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, na := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(na.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(na.Attribute)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BuildOptions controls BuildContentType.
type BuildOptions struct {
	TablePrefix     string
	Root            string
	Types           mapping.Mapper
	Exclude         Set
	DraftAndPublish bool
}

// BuildContentType derives the descriptor for table from its columns.
// Columns in opts.Exclude never become attributes; Required is copied from
// the column.
func BuildContentType(table string, cols []schema.Column, opts BuildOptions) ContentType {
	info := naming.NewModuleInfo(table, opts.TablePrefix, opts.Root)

	attrs := make(Attributes, 0, len(cols))
	for _, c := range cols {
		if opts.Exclude.Has(c.Name) {
			continue
		}
		attrs = append(attrs, NamedAttribute{
			Name: c.Name,
			Attribute: Attribute{
				Type:     opts.Types.Map(c.SourceType),
				Required: c.Required,
			},
		})
	}

	return ContentType{
		Kind:           "collectionType",
		CollectionName: table,
		Info: Info{
			SingularName: info.SingularName,
			PluralName:   naming.PluralName(info.SingularName),
			DisplayName:  naming.Title(info.SingularName),
			Description:  "",
		},
		PluginOptions: map[string]any{},
		Options:       ContentTypeOptions{DraftAndPublish: opts.DraftAndPublish},
		Attributes:    attrs,
	}
}

// Marshal renders ct as two-space indented JSON with a trailing newline.
func (ct ContentType) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(ct, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// ContentTypePath is <basePath>/content-types/<singular>/schema.json.
func ContentTypePath(info naming.ModuleInfo) string {
	return info.BasePath + "/content-types/" + info.SingularName + "/schema.json"
}
