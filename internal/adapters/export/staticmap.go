package export

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
)

// maxMarkedLegs is the leg count above which markers clutter the map and
// only the path is drawn
const maxMarkedLegs = 10

// StaticMapURL returns a static map image URL showing the route as a red
// path. Routes with fewer than ten legs also get numbered markers, one per
// waypoint starting at 1 for the origin.
func StaticMapURL(cfg config.StaticMapConfig, route *navigation.Route) (string, error) {
	if route == nil || len(route.Segments()) == 0 {
		return "", shared.NewValidationError("route", "cannot be empty")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid static map base url: %w", err)
	}

	chain := route.Chain()
	query := base.Query()
	query.Set("size", cfg.Size)
	query.Set("maptype", "terrain")
	if cfg.APIKey != "" {
		query.Set("key", cfg.APIKey)
	}

	if len(route.Segments()) < maxMarkedLegs {
		for i, w := range chain {
			query.Add("markers", fmt.Sprintf("color:blue|label:%d|%s", i+1, formatPoint(w.Position)))
		}
	}

	points := make([]string, len(chain))
	for i, w := range chain {
		points[i] = formatPoint(w.Position)
	}
	query.Set("path", "color:red|weight:5|"+strings.Join(points, "|"))

	base.RawQuery = query.Encode()
	return base.String(), nil
}

func formatPoint(ll shared.LatLong) string {
	return strconv.FormatFloat(ll.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(ll.Lon, 'f', 4, 64)
}
