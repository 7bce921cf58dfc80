// Package persist implements HistoricalDataService: a generic,
// publish-only cache that renders every update it receives to a Sink,
// keyed the way each upstream type names itself (product id, order
// id, or inquiry id).
package persist

import (
	"fmt"
	"time"

	"tradingpipeline/internal/errorsx"
)

// Sink is the external storage a Service publishes rendered records
// to. CSVSink and GormSink are the two implementations the pipeline
// wires in.
type Sink interface {
	Persist(key, line string) error
}

// Service caches the latest record per persist key and republishes
// every PersistData call through its Sink.
type Service[T any] struct {
	data    map[string]T
	sink    Sink
	keyFunc func(T) string
	render  func(T) string
}

// NewService constructs a historical data service that derives a
// persist key from keyFunc and a text line from render for every
// record it receives.
func NewService[T any](sink Sink, keyFunc func(T) string, render func(T) string) *Service[T] {
	return &Service[T]{
		data:    make(map[string]T),
		sink:    sink,
		keyFunc: keyFunc,
		render:  render,
	}
}

// GetData returns the last record persisted under key.
func (s *Service[T]) GetData(key string) (T, error) {
	v, ok := s.data[key]
	if !ok {
		return v, errorsx.Wrap(errorsx.ErrNotFound, key)
	}
	return v, nil
}

// OnMessage is a no-op placeholder; this is a publish-only service,
// matching HistoricalDataService::OnMessage.
func (s *Service[T]) OnMessage(T) error { return nil }

// PersistData caches data under persistKey and publishes it to the sink.
func (s *Service[T]) PersistData(persistKey string, data T) error {
	s.data[persistKey] = data
	return s.sink.Persist(persistKey, s.render(data))
}

// Listener derives a persist key from every update it receives and
// forwards it to a Service, matching
// HistoricalDataServiceListener::ProcessAdd.
type Listener[T any] struct {
	service *Service[T]
}

// NewListener builds a listener wired to service.
func NewListener[T any](service *Service[T]) *Listener[T] {
	return &Listener[T]{service: service}
}

func (l *Listener[T]) ProcessAdd(data T) error {
	return l.service.PersistData(l.service.keyFunc(data), data)
}

func (l *Listener[T]) ProcessRemove(T) error { return nil }
func (l *Listener[T]) ProcessUpdate(T) error { return nil }

// csvWriter is the minimal surface CSVSink needs; *os.File and
// *bufio.Writer both satisfy it.
type csvWriter interface {
	WriteString(string) (int, error)
}

// CSVSink appends "<timestamp>,<key>,<line>" records to a single
// text file per service type, matching
// HistoricalDataConnector::Publish's per-ServiceType append-mode file.
type CSVSink struct {
	w csvWriter
}

// NewCSVSink wraps w, typically a *os.File opened by the caller for
// one service type's result file.
func NewCSVSink(w csvWriter) *CSVSink {
	return &CSVSink{w: w}
}

// Persist writes a single timestamped record line.
func (s *CSVSink) Persist(key, line string) error {
	_, err := s.w.WriteString(fmt.Sprintf("%s,%s,%s\n", time.Now().Format(timeLayout), key, line))
	return err
}

const timeLayout = "2006-01-02 15:04:05.000"
