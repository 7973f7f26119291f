package network

import "strings"

// Direction - допустимые направления движения по пути
type Direction int

const (
	DirectionBoth Direction = iota
	DirectionForward
	DirectionBackward
)

// drivableHighways - значения highway, по которым строится сеть для автомобилей
var drivableHighways = map[string]struct{}{
	"motorway":       {},
	"motorway_link":  {},
	"trunk":          {},
	"trunk_link":     {},
	"primary":        {},
	"primary_link":   {},
	"secondary":      {},
	"secondary_link": {},
	"tertiary":       {},
	"tertiary_link":  {},
	"unclassified":   {},
	"residential":    {},
	"living_street":  {},
	"road":           {},
}

var excludedServices = map[string]struct{}{
	"parking":          {},
	"parking_aisle":    {},
	"driveway":         {},
	"private":          {},
	"emergency_access": {},
}

// DrivableHighways возвращает список значений highway (для SQL-фильтров)
func DrivableHighways() []string {
	values := make([]string, 0, len(drivableHighways))
	for v := range drivableHighways {
		values = append(values, v)
	}
	return values
}

// IsDrivable проверяет, подходит ли путь для сети network_type=drive
func IsDrivable(tags map[string]string) bool {
	if _, ok := drivableHighways[tags["highway"]]; !ok {
		return false
	}

	if parseYes(tags["area"]) || parseYes(tags["construction"]) {
		return false
	}

	for _, key := range []string{"access", "motor_vehicle", "motorcar"} {
		switch strings.ToLower(strings.TrimSpace(tags[key])) {
		case "no", "private":
			return false
		}
	}

	if _, ok := excludedServices[tags["service"]]; ok {
		return false
	}

	return true
}

// Oneway разбирает тег oneway (motorway и roundabout односторонние по умолчанию)
func Oneway(tags map[string]string) Direction {
	switch strings.ToLower(strings.TrimSpace(tags["oneway"])) {
	case "yes", "true", "1":
		return DirectionForward
	case "-1", "reverse":
		return DirectionBackward
	case "no", "false", "0":
		return DirectionBoth
	}

	if tags["highway"] == "motorway" || tags["junction"] == "roundabout" {
		return DirectionForward
	}
	return DirectionBoth
}

func parseYes(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
