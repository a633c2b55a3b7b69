package committer

import "github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"

// Plan is an ordered batch of snapshot mutations applied as one step.
type Plan struct {
	mutations []snapshot.Mutation
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]snapshot.Mutation, 0),
	}
}

func (p *Plan) Add(m snapshot.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Mutations() []snapshot.Mutation {
	return p.mutations
}
