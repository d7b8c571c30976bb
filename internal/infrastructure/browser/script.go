package browser

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/areashot/internal/domain/entity"
)

//go:embed page.js
var pageScript string

// bindingName is the page-to-Go channel installed with Runtime.addBinding.
const bindingName = "__areashotEmit"

// shortcutJS mirrors the object page.js compares key events against.
type shortcutJS struct {
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Shift bool   `json:"shift"`
	Meta  bool   `json:"meta"`
	Key   string `json:"key"`
}

// installScript returns page.js followed by the shortcut registration.
// A zero shortcut leaves the in-page start key disabled.
func installScript(sc entity.Shortcut) string {
	if sc.Key == "" {
		return pageScript
	}
	return pageScript + "\n" + call("setShortcut", shortcutJS{
		Ctrl:  sc.Ctrl,
		Alt:   sc.Alt,
		Shift: sc.Shift,
		Meta:  sc.Meta,
		Key:   sc.Key,
	}) + ";\n"
}

// call renders window.__areashot.<method>(args...) with JSON-encoded arguments.
func call(method string, args ...any) string {
	var b strings.Builder
	b.WriteString("window.__areashot.")
	b.WriteString(method)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		data, err := json.Marshal(arg)
		if err != nil {
			panic(fmt.Sprintf("browser: unencodable argument %T for %s: %v", arg, method, err))
		}
		b.Write(data)
	}
	b.WriteByte(')')
	return b.String()
}
