package mandel

// Regions used as fixtures and benchmark inputs. They cover the whole set,
// filament-heavy boundary patches with uneven per-row cost, and a patch with
// no boundary at all.
var (
	// FullSet frames the whole set in a square, -2..1 by -1.5..1.5.
	FullSet = Region{Xmin: -2.0, Xmax: 1.0, Ymin: -1.5, Ymax: 1.5}

	// SeahorseValley sits in the cleft between the cardioid and the period-2 bulb.
	SeahorseValley = Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15}

	// ElephantValley straddles the real-axis antenna next to the period-3 minibrot.
	ElephantValley = Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02}

	// Cardioid lies inside the main cardioid; every point in it is Interior.
	Cardioid = Region{Xmin: -0.1, Xmax: 0.1, Ymin: -0.1, Ymax: 0.1}
)

// Landmarks lists the named regions in a stable order.
var Landmarks = []struct {
	Name   string
	Region Region
}{
	{"full", FullSet},
	{"seahorse-valley", SeahorseValley},
	{"elephant-valley", ElephantValley},
	{"cardioid", Cardioid},
}
