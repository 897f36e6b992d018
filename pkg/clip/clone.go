package clip

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Clone returns a deep copy.
func (r *ResourceIdentifier) Clone() *ResourceIdentifier {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Clone returns a deep copy.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	c := *m
	c.FixedMired = cloneInt(m.FixedMired)
	return &c
}

// Clone returns a deep copy.
func (o *On) Clone() *On {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// Clone returns a deep copy.
func (d *Dimming) Clone() *Dimming {
	if d == nil {
		return nil
	}
	c := *d
	c.MinDimLevel = cloneFloat(d.MinDimLevel)
	return &c
}

// Clone returns a deep copy.
func (c *Color) Clone() *Color {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Gamut != nil {
		g := *c.Gamut
		cp.Gamut = &g
	}
	return &cp
}

// Clone returns a deep copy.
func (t *ColorTemperature) Clone() *ColorTemperature {
	if t == nil {
		return nil
	}
	c := *t
	c.Mirek = cloneInt(t.Mirek)
	c.MirekValid = cloneBool(t.MirekValid)
	if t.MirekSchema != nil {
		s := *t.MirekSchema
		c.MirekSchema = &s
	}
	return &c
}

// Clone returns a deep copy.
func (d *Dynamics) Clone() *Dynamics {
	if d == nil {
		return nil
	}
	c := *d
	c.Speed = cloneFloat(d.Speed)
	c.SpeedValid = cloneBool(d.SpeedValid)
	c.Duration = cloneInt(d.Duration)
	return &c
}

// Clone returns a deep copy.
func (l *Light) Clone() *Light {
	if l == nil {
		return nil
	}
	c := *l
	c.Owner = l.Owner.Clone()
	c.Metadata = l.Metadata.Clone()
	c.On = l.On.Clone()
	c.Dimming = l.Dimming.Clone()
	c.Color = l.Color.Clone()
	c.ColorTemperature = l.ColorTemperature.Clone()
	c.Dynamics = l.Dynamics.Clone()
	return &c
}

// Clone returns a deep copy.
func (g *GroupedLight) Clone() *GroupedLight {
	if g == nil {
		return nil
	}
	c := *g
	c.Owner = g.Owner.Clone()
	c.On = g.On.Clone()
	c.Dimming = g.Dimming.Clone()
	return &c
}

// Clone returns a deep copy.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	c.Children = append([]ResourceIdentifier(nil), r.Children...)
	c.Services = append([]ResourceIdentifier(nil), r.Services...)
	c.Metadata = r.Metadata.Clone()
	return &c
}

// Clone returns a deep copy.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	c := *s
	c.Group = s.Group.Clone()
	c.Metadata = s.Metadata.Clone()
	if s.Actions != nil {
		c.Actions = make([]SceneAction, len(s.Actions))
		for i, a := range s.Actions {
			ca := a
			ca.Action.On = a.Action.On.Clone()
			ca.Action.Dimming = a.Action.Dimming.Clone()
			ca.Action.Color = a.Action.Color.Clone()
			ca.Action.ColorTemperature = a.Action.ColorTemperature.Clone()
			c.Actions[i] = ca
		}
	}
	if s.Status != nil {
		st := *s.Status
		c.Status = &st
	}
	c.Speed = cloneFloat(s.Speed)
	c.AutoDynamic = cloneBool(s.AutoDynamic)
	return &c
}
