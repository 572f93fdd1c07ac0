// Package handler calls gateway event handlers that return a log message to send.
package handler

import (
	"errors"
	"reflect"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/responses"
)

// Handler ...
type Handler struct {
	mu       sync.RWMutex
	handlers []handler

	HandleResponse func(reflect.Value, *Response)
	HandleError    func(reflect.Value, error)

	// Sync calls handlers in the calling goroutine. Used in tests.
	Sync bool
}

// New creates a new Handler.
func New() *Handler {
	return &Handler{}
}

// Call calls every handler for the given event.
// This should be passed as a handler to the state.
func (h *Handler) Call(ev interface{}) {
	evV := reflect.ValueOf(ev)
	evT := evV.Type()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, entry := range h.handlers {
		if entry.event != evT {
			continue
		}

		if h.Sync {
			h.call(entry, evV)
		} else {
			go h.call(entry, evV)
		}
	}
}

func (h *Handler) call(hn handler, ev reflect.Value) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf("Panic in handler for %s: %v", hn.event, r)
		}
	}()

	resps := hn.callback.Call([]reflect.Value{ev})

	if err, ok := resps[1].Interface().(error); ok && err != nil {
		if h.HandleError != nil {
			h.HandleError(ev, err)
		}
		return
	}

	if resp, ok := resps[0].Interface().(*Response); ok && resp != nil {
		if h.HandleResponse != nil {
			h.HandleResponse(ev, resp)
		}
	}
}

// AddHandler adds the given function handler. It panics if fn has the wrong signature.
func (h *Handler) AddHandler(fn interface{}) {
	handler, err := newHandler(fn)
	if err != nil {
		panic(err)
	}

	h.mu.Lock()
	h.handlers = append(h.handlers, handler)
	h.mu.Unlock()
}

// Response must be returned by handler functions.
type Response struct {
	GuildID discord.GuildID
	// Channel ID to log to
	ChannelID discord.ChannelID

	Message responses.Message
}

type handler struct {
	event    reflect.Type
	callback reflect.Value
}

var returnType0 = reflect.TypeOf(&Response{})
var returnType1 = reflect.TypeOf((*error)(nil)).Elem()

func newHandler(fn interface{}) (handler, error) {
	fnV := reflect.ValueOf(fn)
	fnT := fnV.Type()

	handler := handler{
		callback: fnV,
	}

	if fnT.Kind() != reflect.Func {
		return handler, errors.New("fn is not a function")
	}

	if fnT.NumIn() != 1 {
		return handler, errors.New("number of arguments must be 1")
	}

	if fnT.NumOut() != 2 {
		return handler, errors.New("number of returns must be 2")
	}

	handler.event = fnT.In(0)

	if fnT.Out(0) != returnType0 {
		return handler, errors.New("return 0 must be a *Response")
	}

	if fnT.Out(1) != returnType1 {
		return handler, errors.New("return 1 must be an error")
	}

	if handler.event.Kind() != reflect.Ptr {
		return handler, errors.New("argument must be a pointer")
	}

	return handler, nil
}
