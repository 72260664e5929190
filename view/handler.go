/*
 * handler.go, part of elview.
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
	"sync"
	"sync/atomic"

	"github.com/rmera/elview/convert"
	"go.uber.org/zap"
)

//DefineData is the front-end function that receives the configuration document.
const DefineData = "defineData"

//BrowserSettings are the parameters for a new browser window.
type BrowserSettings struct {
	URL   string //The front-end entry point.
	Title string
	//Allow the page to read local files, such as the intermediate CSV file.
	FileAccess bool
}

//Browser is one window of a display engine.
type Browser interface {
	//SetLoadHandler registers h to be notified of the loading state of the page.
	SetLoadHandler(h *LoadHandler)

	//ExecuteFunction calls the javascript function name in the page, with args
	//serialized as JSON.
	ExecuteFunction(name string, args ...interface{}) error

	ShowDevTools() error
}

//Engine is a display engine able to show the ElectroLens front end.
type Engine interface {
	//Versions returns the name and version of the components of the engine.
	Versions() map[string]string

	CreateBrowser(settings BrowserSettings) (Browser, error)

	//MessageLoop runs the engine until the windows are closed, or ctx is done.
	MessageLoop(ctx context.Context) error

	Shutdown() error
}

//LoadHandler hands the configuration document to the page once it
//finishes loading.
type LoadHandler struct {
	doc   *convert.Document
	once  sync.Once
	fired atomic.Bool
	log   *zap.Logger
}

//NewLoadHandler returns a handler for doc. A nil logger means zap's global logger.
func NewLoadHandler(doc *convert.Document, log *zap.Logger) *LoadHandler {
	if log == nil {
		log = zap.L()
	}
	return &LoadHandler{doc: doc, log: log}
}

//OnLoadingStateChange is called by the engine when the loading state of the page in b
//changes. The first time loading is false (the DOM is ready) the document is passed to
//the page's defineData function. Later calls do nothing.
func (h *LoadHandler) OnLoadingStateChange(b Browser, loading bool) error {
	if loading {
		return nil
	}
	var err error
	h.once.Do(func() {
		h.fired.Store(true)
		h.log.Debug("Page loaded, sending data")
		err = b.ExecuteFunction(DefineData, h.doc)
	})
	return err
}

//Fired returns true if the document has been sent to the page.
func (h *LoadHandler) Fired() bool {
	return h.fired.Load()
}
