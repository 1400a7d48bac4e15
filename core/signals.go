package core

import "github.com/ionut-t/gotext/internal/log"

type Signal any

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

// SaveSignal carries the path the document was written to.
type SaveSignal struct {
	path string
}

func (s SaveSignal) Value() string {
	return s.path
}

// LoadSignal carries the path of a newly opened document.
type LoadSignal struct {
	path string
}

func (l LoadSignal) Value() string {
	return l.path
}

type QuitSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *Editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		log.Debug(log.CatEditor, "signal channel full, dropping signal", "signal", signal)
	}
}
