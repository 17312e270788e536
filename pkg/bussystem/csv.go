package bussystem

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shapestone/shape-dsv/pkg/dsv"
)

// Column names looked up in the header rows.
const (
	StopIDHeader = "stop_id"
	NodeIDHeader = "node_id"
	RouteHeader  = "route"
)

// RowReader yields rows of fields. *dsv.Reader satisfies it.
//
// A RowReader that also has an Err() error method, like *dsv.Reader, is
// checked after every row; a failure stops loading with ErrRead.
type RowReader interface {
	ReadRow() ([]string, bool)
}

// CSVBusSystem is a System loaded from a stops document and a routes document.
type CSVBusSystem struct {
	opts Options

	stops        []*Stop
	stopsByID    map[StopID]*Stop
	routes       []*Route
	routesByName map[string]*Route
}

var _ System = (*CSVBusSystem)(nil)

// NewCSVBusSystem loads stops and then routes.
//
// Each document is read until its first invalid row; everything loaded before
// that row is kept. Routes may only reference stops that were loaded. The
// returned system is never nil. The error joins one *RowError per document
// that did not load completely.
func NewCSVBusSystem(stops, routes RowReader, opts ...Option) (*CSVBusSystem, error) {
	if stops == nil || routes == nil {
		panic("bussystem: row readers cannot be nil")
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &CSVBusSystem{
		opts:         o,
		stopsByID:    make(map[StopID]*Stop),
		routesByName: make(map[string]*Route),
	}

	stopsErr := s.load(o.StopsName, stops, []string{StopIDHeader, NodeIDHeader}, s.addStop)
	routesErr := s.load(o.RoutesName, routes, []string{RouteHeader, StopIDHeader}, s.addRouteStop)
	return s, errors.Join(stopsErr, routesErr)
}

// load reads the header row, resolves the columns named by headers, and passes
// each following row to add with the resolved column indexes.
func (s *CSVBusSystem) load(file string, r RowReader, headers []string, add func(row []string, cols []int) error) error {
	header, ok := r.ReadRow()
	if err := readErr(r); err != nil {
		return s.reject(file, 1, err)
	}
	if !ok {
		return s.reject(file, 1, fmt.Errorf("%w: empty document", ErrMissingHeader))
	}

	cols := make([]int, len(headers))
	for i, name := range headers {
		cols[i] = dsv.HeaderIndex(header, name)
		if cols[i] < 0 {
			return s.reject(file, 1, fmt.Errorf("%w: %q", ErrMissingHeader, name))
		}
	}

	for line := 2; ; line++ {
		row, ok := r.ReadRow()
		if err := readErr(r); err != nil {
			return s.reject(file, line, err)
		}
		if !ok {
			return nil
		}
		if err := add(row, cols); err != nil {
			return s.reject(file, line, err)
		}
	}
}

func (s *CSVBusSystem) reject(file string, row int, err error) error {
	s.opts.Logger.Info("bussystem: loading stopped", "file", file, "row", row, "err", err)
	return &RowError{File: file, Row: row, Err: err}
}

func (s *CSVBusSystem) addStop(row []string, cols []int) error {
	id, err := parseID(row, cols[0], StopIDHeader)
	if err != nil {
		return err
	}
	if _, ok := s.stopsByID[StopID(id)]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateStop, id)
	}
	node, err := parseID(row, cols[1], NodeIDHeader)
	if err != nil {
		return err
	}

	stop := &Stop{id: StopID(id), node: NodeID(node)}
	s.stops = append(s.stops, stop)
	s.stopsByID[stop.id] = stop
	s.opts.Logger.Debug("bussystem: stop loaded", "stop_id", id, "node_id", node)
	return nil
}

func (s *CSVBusSystem) addRouteStop(row []string, cols []int) error {
	if cols[0] >= len(row) {
		return fmt.Errorf("%w: %s", ErrMissingColumn, RouteHeader)
	}
	name := row[cols[0]]
	if name == "" {
		return ErrEmptyRouteName
	}
	id, err := parseID(row, cols[1], StopIDHeader)
	if err != nil {
		return err
	}
	stopID := StopID(id)
	if _, ok := s.stopsByID[stopID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStop, id)
	}

	route, ok := s.routesByName[name]
	if !ok {
		route = &Route{name: name}
		s.routes = append(s.routes, route)
		s.routesByName[name] = route
	} else if route.hasStop(stopID) {
		return fmt.Errorf("%w: route %q, stop %d", ErrDuplicateRouteStop, name, id)
	}
	route.stops = append(route.stops, stopID)
	s.opts.Logger.Debug("bussystem: route stop loaded", "route", name, "stop_id", id)
	return nil
}

// parseID parses the unsigned decimal in column col.
func parseID(row []string, col int, name string) (uint64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	v, err := strconv.ParseUint(row[col], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %w", ErrInvalidNumber, name, row[col], err)
	}
	return v, nil
}

// readErr reports the failure of a reader that can fail, wrapped in ErrRead.
func readErr(r RowReader) error {
	if e, ok := r.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
	return nil
}

// StopCount returns the number of loaded stops.
func (s *CSVBusSystem) StopCount() int {
	return len(s.stops)
}

// RouteCount returns the number of loaded routes.
func (s *CSVBusSystem) RouteCount() int {
	return len(s.routes)
}

// StopByIndex returns the stop at index in load order, or nil.
func (s *CSVBusSystem) StopByIndex(index int) *Stop {
	if index < 0 || index >= len(s.stops) {
		return nil
	}
	return s.stops[index]
}

// StopByID returns the stop with id, or nil.
func (s *CSVBusSystem) StopByID(id StopID) *Stop {
	return s.stopsByID[id]
}

// RouteByIndex returns the route at index in order of first appearance, or nil.
func (s *CSVBusSystem) RouteByIndex(index int) *Route {
	if index < 0 || index >= len(s.routes) {
		return nil
	}
	return s.routes[index]
}

// RouteByName returns the route called name, or nil.
func (s *CSVBusSystem) RouteByName(name string) *Route {
	return s.routesByName[name]
}
