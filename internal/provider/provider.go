package provider

import (
	"fmt"
	"strings"
)

// Provider is one of the two fixed upstream movie-pricing sources. Keeping
// this a closed set means an unknown provider name can only fail once, at
// Parse, instead of deep inside a handler.
type Provider int

const (
	CinemaWorld Provider = iota
	FilmWorld
)

// All lists every known provider, in fan-out order.
var All = []Provider{CinemaWorld, FilmWorld}

func Parse(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cinemaworld":
		return CinemaWorld, nil
	case "filmworld":
		return FilmWorld, nil
	}
	return 0, fmt.Errorf("unknown provider %q", s)
}

func (p Provider) String() string {
	switch p {
	case CinemaWorld:
		return "cinemaworld"
	case FilmWorld:
		return "filmworld"
	}
	return fmt.Sprintf("provider(%d)", int(p))
}
