package clip

// ResourceType identifies the kind of a CLIP v2 resource.
type ResourceType string

// Resource types that can appear on the event stream.
const (
	ResourceTypeLight                      ResourceType = "light"
	ResourceTypeGroupedLight               ResourceType = "grouped_light"
	ResourceTypeRoom                       ResourceType = "room"
	ResourceTypeZone                       ResourceType = "zone"
	ResourceTypeScene                      ResourceType = "scene"
	ResourceTypeDevice                     ResourceType = "device"
	ResourceTypeBridge                     ResourceType = "bridge"
	ResourceTypeBridgeHome                 ResourceType = "bridge_home"
	ResourceTypeButton                     ResourceType = "button"
	ResourceTypeMotion                     ResourceType = "motion"
	ResourceTypeTemperature                ResourceType = "temperature"
	ResourceTypeLightLevel                 ResourceType = "light_level"
	ResourceTypeEntertainment              ResourceType = "entertainment"
	ResourceTypeEntertainmentConfiguration ResourceType = "entertainment_configuration"
	ResourceTypeBehaviorInstance           ResourceType = "behavior_instance"
	ResourceTypeBehaviorScript             ResourceType = "behavior_script"
	ResourceTypeGeofence                   ResourceType = "geofence"
	ResourceTypeGeofenceClient             ResourceType = "geofence_client"
	ResourceTypeGeolocation                ResourceType = "geolocation"
)

// ResourceIdentifier references another resource by ID and type.
type ResourceIdentifier struct {
	RID   string       `json:"rid"`
	RType ResourceType `json:"rtype"`
}

// Metadata holds the human-facing description of a resource.
type Metadata struct {
	Name       string  `json:"name"`
	Archetype  string  `json:"archetype,omitempty"`
	FixedMired *int    `json:"fixed_mired,omitempty"`
}

// On is the on/off state fragment.
type On struct {
	On bool `json:"on"`
}

// Dimming is the brightness state fragment. Brightness is a percentage
// in [0, 100].
type Dimming struct {
	Brightness  float64  `json:"brightness"`
	MinDimLevel *float64 `json:"min_dim_level,omitempty"`
}

// XY is a CIE xy chromaticity coordinate pair.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gamut defines the color space boundaries of a light.
type Gamut struct {
	Red   XY `json:"red"`
	Green XY `json:"green"`
	Blue  XY `json:"blue"`
}

// Color is the CIE xy color fragment.
type Color struct {
	XY        XY     `json:"xy"`
	Gamut     *Gamut `json:"gamut,omitempty"`
	GamutType string `json:"gamut_type,omitempty"`
}

// MirekSchema is the supported color temperature range of a light.
type MirekSchema struct {
	MirekMinimum int `json:"mirek_minimum"`
	MirekMaximum int `json:"mirek_maximum"`
}

// ColorTemperature is the color temperature fragment in mirek.
type ColorTemperature struct {
	Mirek       *int         `json:"mirek,omitempty"`
	MirekValid  *bool        `json:"mirek_valid,omitempty"`
	MirekSchema *MirekSchema `json:"mirek_schema,omitempty"`
}

// Dynamics describes a light's dynamic effect state.
type Dynamics struct {
	Status     string   `json:"status,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	SpeedValid *bool    `json:"speed_valid,omitempty"`
	Duration   *int     `json:"duration,omitempty"`
}
