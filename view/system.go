/*
 * system.go, part of elview.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package view

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"

	"go.uber.org/zap"
)

//go:embed index.html.tmpl
var indexHTML string

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$.]*$`)

//SystemEngine shows the front end in the default browser of the system. Each browser is
//an HTML page that loads the front end and, once loaded, replays the functions executed
//on the browser.
type SystemEngine struct {
	//Dir is where the pages are written. A new temporary directory is used if empty.
	Dir string

	//Open shows the page at path. It uses the system's opener (xdg-open, open or
	//rundll32) if nil.
	Open func(ctx context.Context, path string) error

	//Wait makes MessageLoop block until its context is done, after opening the pages.
	Wait bool

	Logger *zap.Logger

	browsers []*systemBrowser
	closed   bool
}

//NewSystemEngine returns a SystemEngine writing its pages to dir.
func NewSystemEngine(dir string) *SystemEngine {
	return &SystemEngine{Dir: dir}
}

func (E *SystemEngine) logger() *zap.Logger {
	if E.Logger == nil {
		return zap.L().Named("system-engine")
	}
	return E.Logger
}

//Versions returns the browser opener used.
func (E *SystemEngine) Versions() map[string]string {
	return map[string]string{"opener": openerName(), "engine": "system browser"}
}

//CreateBrowser creates a new page for the front end in settings.URL.
func (E *SystemEngine) CreateBrowser(settings BrowserSettings) (Browser, error) {
	if E.closed {
		return nil, fmt.Errorf("system engine: already shut down")
	}
	if E.Dir == "" {
		dir, err := os.MkdirTemp("", "elview")
		if err != nil {
			return nil, err
		}
		E.Dir = dir
	}
	b := &systemBrowser{
		settings: settings,
		path:     filepath.Join(E.Dir, fmt.Sprintf("elview_%d.html", len(E.browsers))),
	}
	E.browsers = append(E.browsers, b)
	return b, nil
}

//MessageLoop loads every page: the load handlers are notified, the page is written with
//the calls they made, and then opened.
func (E *SystemEngine) MessageLoop(ctx context.Context) error {
	open := E.Open
	if open == nil {
		open = openPath
	}
	for _, b := range E.browsers {
		//The page is static: the handler is told it finished loading before it is written,
		//so its function calls end up in the page, which replays them on its load event.
		if b.handler != nil {
			if err := b.handler.OnLoadingStateChange(b, true); err != nil {
				return err
			}
			if err := b.handler.OnLoadingStateChange(b, false); err != nil {
				return err
			}
		}
		if err := b.render(); err != nil {
			return err
		}
		E.logger().Info("Opening page", zap.String("file", b.path))
		if err := open(ctx, b.path); err != nil {
			return fmt.Errorf("system engine: opening %s: %w", b.path, err)
		}
	}
	if E.Wait {
		<-ctx.Done()
	}
	return nil
}

//Shutdown marks the engine as closed. The pages are kept, as the browser may still be reading them.
func (E *SystemEngine) Shutdown() error {
	E.closed = true
	return nil
}

//Pages returns the paths of the pages written so far.
func (E *SystemEngine) Pages() []string {
	ret := make([]string, 0, len(E.browsers))
	for _, b := range E.browsers {
		ret = append(ret, b.path)
	}
	return ret
}

type call struct {
	Name template.JS
	Args []interface{}
}

type systemBrowser struct {
	settings BrowserSettings
	path     string
	handler  *LoadHandler
	calls    []call
	devtools bool
}

func (b *systemBrowser) SetLoadHandler(h *LoadHandler) { b.handler = h }

func (b *systemBrowser) ExecuteFunction(name string, args ...interface{}) error {
	if !jsIdentifier.MatchString(name) {
		return fmt.Errorf("system engine: %q is not a javascript function name", name)
	}
	if args == nil {
		args = make([]interface{}, 0)
	}
	b.calls = append(b.calls, call{Name: template.JS(name), Args: args})
	return nil
}

//ShowDevTools can't open the developer tools of an external browser, but makes the page
//log its loading to the console.
func (b *systemBrowser) ShowDevTools() error {
	b.devtools = true
	return nil
}

func (b *systemBrowser) render() error {
	fout, err := os.Create(b.path)
	if err != nil {
		return err
	}
	data := struct {
		Title    string
		FrontEnd template.URL
		DevTools bool
		Calls    []call
	}{b.settings.Title, template.URL(b.settings.URL), b.devtools, b.calls}
	if err := pageTemplate.Execute(fout, data); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}

func openerName() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32"
	}
	return "xdg-open"
}

func openPath(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.CommandContext(ctx, openerName(), path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
