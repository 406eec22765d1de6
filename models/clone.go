// ABOUTME: Deep copy helpers for records and state
// ABOUTME: Keeps reducers pure and snapshots independent of the live state
package models

// Clone returns a deep copy of the record. Nil slices stay nil.
func (r DailyRecord) Clone() DailyRecord {
	out := DailyRecord{
		Relationships: cloneAssessments(r.Relationships),
	}
	if r.Categories != nil {
		out.Categories = append([]Category{}, r.Categories...)
	}
	if r.Sales != nil {
		s := *r.Sales
		s.Sources = cloneSlice(r.Sales.Sources)
		s.RevenueBreakdown = cloneSlice(r.Sales.RevenueBreakdown)
		s.CallLog = cloneCalls(r.Sales.CallLog)
		out.Sales = &s
	}
	if r.Network != nil {
		n := *r.Network
		n.NewContacts = cloneContacts(r.Network.NewContacts)
		out.Network = &n
	}
	if r.Finance != nil {
		f := *r.Finance
		out.Finance = &f
	}
	if r.Productivity != nil {
		p := *r.Productivity
		p.MajorAccomplishments = cloneSlice(r.Productivity.MajorAccomplishments)
		out.Productivity = &p
	}
	if r.Gym != nil {
		g := *r.Gym
		out.Gym = &g
	}
	if r.Notes != nil {
		n := *r.Notes
		out.Notes = &n
	}
	return out
}

// Clone returns a deep copy of the contact.
func (c Contact) Clone() Contact {
	c.Tags = cloneSlice(c.Tags)
	return c
}

// Clone returns a deep copy of the whole state.
func (s *UserState) Clone() *UserState {
	out := *s
	out.Entries = make(map[string]DailyRecord, len(s.Entries))
	for date, rec := range s.Entries {
		out.Entries[date] = rec.Clone()
	}
	out.Contacts = cloneContacts(s.Contacts)
	if out.Contacts == nil {
		out.Contacts = []Contact{}
	}
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneCalls(in []CallRecord) []CallRecord {
	if in == nil {
		return nil
	}
	out := make([]CallRecord, len(in))
	for i, c := range in {
		c.Objections = cloneSlice(c.Objections)
		out[i] = c
	}
	return out
}

func cloneContacts(in []Contact) []Contact {
	if in == nil {
		return nil
	}
	out := make([]Contact, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneAssessments(in []RelationshipAssessment) []RelationshipAssessment {
	return cloneSlice(in)
}
