package genphen

import "math"

// Genomes is the genomic view of a Dataset: entries are samples and
// features are locus-allele descriptors holding allele frequencies.
type Genomes struct {
	*Dataset
}

// NewGenomes constructs an empty n×p genomic dataset.
func NewGenomes(n, p int) *Genomes {
	return &Genomes{Dataset: New(n, p)}
}

// LociAlleles returns the locus-allele descriptors (the feature axis).
func (g *Genomes) LociAlleles() []string { return g.Features }

// Clone returns a deep copy.
func (g *Genomes) Clone() *Genomes {
	return &Genomes{Dataset: g.Dataset.Clone()}
}

// Merge combines two genomic datasets; see Dataset.Merge.
func (g *Genomes) Merge(other *Genomes, weights ConflictWeights) (*Genomes, error) {
	out, err := g.Dataset.Merge(other.Dataset, weights)
	if err != nil {
		return nil, err
	}
	return &Genomes{Dataset: out}, nil
}

// Phenomes is the phenomic view of a Dataset: entries are samples and
// features are trait names.
type Phenomes struct {
	*Dataset
}

// NewPhenomes constructs an empty n×p phenomic dataset.
func NewPhenomes(n, p int) *Phenomes {
	return &Phenomes{Dataset: New(n, p)}
}

// Traits returns the trait names (the feature axis).
func (p *Phenomes) Traits() []string { return p.Features }

// Clone returns a deep copy.
func (p *Phenomes) Clone() *Phenomes {
	return &Phenomes{Dataset: p.Dataset.Clone()}
}

// Merge combines two phenomic datasets; see Dataset.Merge.
func (p *Phenomes) Merge(other *Phenomes, weights ConflictWeights) (*Phenomes, error) {
	out, err := p.Dataset.Merge(other.Dataset, weights)
	if err != nil {
		return nil, err
	}
	return &Phenomes{Dataset: out}, nil
}

// AddCompositeTrait derives a new trait column from existing ones; see
// Dataset.AddCompositeFeature.
func (p *Phenomes) AddCompositeTrait(name, expr string) (*Phenomes, error) {
	out, err := p.Dataset.AddCompositeFeature(name, expr)
	if err != nil {
		return nil, err
	}
	return &Phenomes{Dataset: out}, nil
}

// Dimensions extends Dataset.Dimensions with cell statistics: the total
// cell count and how many cells are zero, missing, NaN, or infinite.
func (p *Phenomes) Dimensions() (map[string]int, error) {
	dims, err := p.Dataset.Dimensions()
	if err != nil {
		return nil, err
	}

	var zeroes, missing, nan, inf int
	for i := range p.Values {
		for j := range p.Values[i] {
			if p.Missing[i][j] {
				missing++
				continue
			}
			v := p.Values[i][j]
			switch {
			case math.IsNaN(v):
				nan++
			case math.IsInf(v, 0):
				inf++
			case v == 0:
				zeroes++
			}
		}
	}

	dims["total"] = p.N() * p.P()
	dims["zeroes"] = zeroes
	dims["missing"] = missing
	dims["nan"] = nan
	dims["inf"] = inf
	return dims, nil
}
