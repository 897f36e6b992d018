package clip

// Light is the full snapshot of a light resource.
type Light struct {
	ID               string              `json:"id"`
	IDV1             string              `json:"id_v1,omitempty"`
	Type             ResourceType        `json:"type"`
	Owner            *ResourceIdentifier `json:"owner,omitempty"`
	Metadata         *Metadata           `json:"metadata,omitempty"`
	On               *On                 `json:"on,omitempty"`
	Dimming          *Dimming            `json:"dimming,omitempty"`
	Color            *Color              `json:"color,omitempty"`
	ColorTemperature *ColorTemperature   `json:"color_temperature,omitempty"`
	Dynamics         *Dynamics           `json:"dynamics,omitempty"`
}

// GroupedLight is the full snapshot of a grouped light resource. It
// aggregates the on/dimming state of every light service in its owner group.
type GroupedLight struct {
	ID      string              `json:"id"`
	IDV1    string              `json:"id_v1,omitempty"`
	Type    ResourceType        `json:"type"`
	Owner   *ResourceIdentifier `json:"owner,omitempty"`
	On      *On                 `json:"on,omitempty"`
	Dimming *Dimming            `json:"dimming,omitempty"`
}

// Room is the full snapshot of a room resource. Children are the devices
// assigned to the room; Services are the grouped services (such as the
// room's grouped_light) the bridge derives from them.
type Room struct {
	ID       string               `json:"id"`
	IDV1     string               `json:"id_v1,omitempty"`
	Type     ResourceType         `json:"type"`
	Children []ResourceIdentifier `json:"children,omitempty"`
	Services []ResourceIdentifier `json:"services,omitempty"`
	Metadata *Metadata            `json:"metadata,omitempty"`
}

// SceneAction is one light's target state within a scene.
type SceneAction struct {
	Target ResourceIdentifier `json:"target"`
	Action struct {
		On               *On               `json:"on,omitempty"`
		Dimming          *Dimming          `json:"dimming,omitempty"`
		Color            *Color            `json:"color,omitempty"`
		ColorTemperature *ColorTemperature `json:"color_temperature,omitempty"`
	} `json:"action"`
}

// SceneStatus reports whether a scene is currently active.
type SceneStatus struct {
	Active string `json:"active,omitempty"`
}

// Scene is the full snapshot of a scene resource.
type Scene struct {
	ID          string              `json:"id"`
	IDV1        string              `json:"id_v1,omitempty"`
	Type        ResourceType        `json:"type"`
	Group       *ResourceIdentifier `json:"group,omitempty"`
	Metadata    *Metadata           `json:"metadata,omitempty"`
	Actions     []SceneAction       `json:"actions,omitempty"`
	Status      *SceneStatus        `json:"status,omitempty"`
	Speed       *float64            `json:"speed,omitempty"`
	AutoDynamic *bool               `json:"auto_dynamic,omitempty"`
}
