// Package bussystem loads a bus network of stops and routes from two
// delimiter-separated documents.
//
// The stops document needs a header row with stop_id and node_id columns.
// The routes document needs a header row with route and stop_id columns;
// each row adds one stop to the named route, in document order.
//
//	stops := dsv.NewReader(dsv.NewStringSource("stop_id,node_id\n1,123\n2,124"), ',')
//	routes := dsv.NewReader(dsv.NewStringSource("route,stop_id\nA,1\nA,2"), ',')
//	sys, err := bussystem.NewCSVBusSystem(stops, routes)
//
// Loading stops at the first invalid row of each document and keeps every
// entity read before it, so a non-nil error still comes with a usable
// system.
package bussystem

import "math"

// StopID identifies a stop.
type StopID uint64

// NodeID identifies the street map node a stop sits on.
type NodeID uint64

// InvalidStopID is returned for route positions that hold no stop.
const InvalidStopID StopID = math.MaxUint64

// Stop is a bus stop.
type Stop struct {
	id   StopID
	node NodeID
}

// ID returns the stop's identifier.
func (s *Stop) ID() StopID {
	return s.id
}

// NodeID returns the street map node of the stop.
func (s *Stop) NodeID() NodeID {
	return s.node
}

// Route is a named, ordered sequence of stops.
type Route struct {
	name  string
	stops []StopID
}

// Name returns the route name.
func (r *Route) Name() string {
	return r.name
}

// StopCount returns the number of stops on the route.
func (r *Route) StopCount() int {
	return len(r.stops)
}

// StopID returns the stop at position index, or InvalidStopID when index is
// out of range.
func (r *Route) StopID(index int) StopID {
	if index < 0 || index >= len(r.stops) {
		return InvalidStopID
	}
	return r.stops[index]
}

func (r *Route) hasStop(id StopID) bool {
	for _, s := range r.stops {
		if s == id {
			return true
		}
	}
	return false
}

// System is a read-only view of a bus network.
// Lookups return nil for out of range indexes and unknown keys.
type System interface {
	StopCount() int
	RouteCount() int
	StopByIndex(index int) *Stop
	StopByID(id StopID) *Stop
	RouteByIndex(index int) *Route
	RouteByName(name string) *Route
}
