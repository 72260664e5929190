/*
 * view_test.go, part of elview.
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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	chem "github.com/rmera/elview"
	"github.com/rmera/elview/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type executed struct {
	name string
	args []interface{}
}

type fakeBrowser struct {
	settings BrowserSettings
	handler  *LoadHandler
	calls    []executed
	devtools bool
}

func (b *fakeBrowser) SetLoadHandler(h *LoadHandler) { b.handler = h }

func (b *fakeBrowser) ExecuteFunction(name string, args ...interface{}) error {
	b.calls = append(b.calls, executed{name, args})
	return nil
}

func (b *fakeBrowser) ShowDevTools() error {
	b.devtools = true
	return nil
}

//fakeEngine notifies the handler of a page that loads twice.
type fakeEngine struct {
	browser   *fakeBrowser
	loopErr   error
	shutdowns int
}

func (E *fakeEngine) Versions() map[string]string { return map[string]string{"fake": "1.0"} }

func (E *fakeEngine) CreateBrowser(s BrowserSettings) (Browser, error) {
	E.browser = &fakeBrowser{settings: s}
	return E.browser, nil
}

func (E *fakeEngine) MessageLoop(ctx context.Context) error {
	for _, loading := range []bool{true, false, true, false} {
		if err := E.browser.handler.OnLoadingStateChange(E.browser, loading); err != nil {
			return err
		}
	}
	return E.loopErr
}

func (E *fakeEngine) Shutdown() error {
	E.shutdowns++
	return nil
}

func water(Te *testing.T) convert.Input {
	Te.Helper()
	traj, err := chem.XYZFileRead("../test/water.xyz")
	require.NoError(Te, err)
	return convert.Framed(traj)
}

func TestView(Te *testing.T) {
	dir := Te.TempDir()
	eng := new(fakeEngine)
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.ShowDevTools = true
	opts.Logger = zaptest.NewLogger(Te)
	opts.Convert = []convert.Option{convert.WithMoleculeName("water")}
	require.NoError(Te, View(context.Background(), water(Te), eng, opts))

	b := eng.browser
	assert.Equal(Te, "ElectroLens", b.settings.Title)
	assert.Equal(Te, DefaultFrontEnd, b.settings.URL)
	assert.True(Te, b.settings.FileAccess)
	assert.True(Te, b.devtools)
	require.Len(Te, b.calls, 1, "the data should be sent only once")
	assert.Equal(Te, DefineData, b.calls[0].name)
	require.Len(Te, b.calls[0].args, 1)
	doc, ok := b.calls[0].args[0].(*convert.Document)
	require.True(Te, ok)
	assert.Equal(Te, "water", doc.Views[0].MoleculeName)
	assert.Len(Te, doc.Views[0].MoleculeData.Data, 9)
	assert.True(Te, b.handler.Fired())
	assert.Equal(Te, 1, eng.shutdowns)

	require.NoError(Te, convert.ValidateFile(filepath.Join(dir, "config.json")))
	require.NoError(Te, convert.ValidateFile(filepath.Join(dir, convert.DefaultJSONName)))
}

func TestViewErrors(Te *testing.T) {
	dir := Te.TempDir()
	eng := &fakeEngine{loopErr: errors.New("window crashed")}
	opts := Options{OutputDir: dir}
	err := View(context.Background(), water(Te), eng, opts)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "window crashed")
	assert.Equal(Te, 1, eng.shutdowns)
	_, err = os.Stat(filepath.Join(dir, "config.json"))
	assert.True(Te, os.IsNotExist(err), "the zero Options should not save the config")

	eng = new(fakeEngine)
	err = View(context.Background(), convert.Framed(chem.NewTrajectory()), eng, opts)
	assert.True(Te, errors.Is(err, convert.ErrNoFrames))
	assert.Nil(Te, eng.browser)
	assert.Equal(Te, 1, eng.shutdowns)
}

func TestLoadHandler(Te *testing.T) {
	doc := &convert.Document{}
	h := NewLoadHandler(doc, nil)
	b := new(fakeBrowser)
	require.NoError(Te, h.OnLoadingStateChange(b, true))
	assert.Empty(Te, b.calls)
	assert.False(Te, h.Fired())
	require.NoError(Te, h.OnLoadingStateChange(b, false))
	require.NoError(Te, h.OnLoadingStateChange(b, false))
	require.Len(Te, b.calls, 1)
	assert.Same(Te, doc, b.calls[0].args[0])
}

func TestLoadHandlerConcurrent(Te *testing.T) {
	h := NewLoadHandler(&convert.Document{}, zaptest.NewLogger(Te))
	b := new(fakeBrowser)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(Te, h.OnLoadingStateChange(b, false))
		}()
		go func() {
			defer wg.Done()
			h.Fired()
		}()
	}
	wg.Wait()
	assert.True(Te, h.Fired())
	assert.Len(Te, b.calls, 1)
}

func TestSystemEngine(Te *testing.T) {
	dir := Te.TempDir()
	var opened []string
	eng := NewSystemEngine(filepath.Join(dir, "pages"))
	require.NoError(Te, os.MkdirAll(eng.Dir, 0o755))
	eng.Logger = zaptest.NewLogger(Te)
	eng.Open = func(ctx context.Context, path string) error {
		opened = append(opened, path)
		return nil
	}
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.FrontEnd = "file:///opt/electrolens/main.js"
	opts.Logger = eng.Logger
	require.NoError(Te, View(context.Background(), water(Te), eng, opts))

	require.Equal(Te, eng.Pages(), opened)
	require.Len(Te, opened, 1)
	page, err := os.ReadFile(opened[0])
	require.NoError(Te, err)
	html := string(page)
	assert.Contains(Te, html, `<title>ElectroLens</title>`)
	assert.Contains(Te, html, `<script src="file:///opt/electrolens/main.js"></script>`)
	assert.Contains(Te, html, `defineData.apply(null, [`)
	assert.Contains(Te, html, `"viewType":"3DView"`)
	assert.Equal(Te, 1, strings.Count(html, "defineData"))

	_, err = eng.CreateBrowser(BrowserSettings{})
	assert.Error(Te, err, "a shut down engine should not create browsers")
}

func TestSystemBrowserFunctionName(Te *testing.T) {
	b := new(systemBrowser)
	assert.Error(Te, b.ExecuteFunction("alert(1);x"))
	assert.NoError(Te, b.ExecuteFunction("app.defineData", 1))
}
