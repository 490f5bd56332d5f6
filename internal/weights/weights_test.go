package weights

import (
	"math"
	"testing"
)

func cat(name string, weight float64, criteria ...Criterion) Category {
	return Category{
		Name:        name,
		DisplayName: name,
		Weight:      weight,
		Criteria:    criteria,
	}
}

func crit(name string, weight Relative) Criterion {
	return Criterion{Name: name, DisplayName: name, Weight: weight}
}

func TestTotalCategoryWeight(t *testing.T) {
	cats := []Category{cat("a", 40, crit("x", 100)), cat("b", 60, crit("y", 100))}
	if got := TotalCategoryWeight(cats); got != 100 {
		t.Errorf("got %f, want 100", got)
	}
	if got := TotalCategoryWeight(nil); got != 0 {
		t.Errorf("empty list: got %f, want 0", got)
	}
}

func TestWeightConversion(t *testing.T) {
	tests := []struct {
		name           string
		relative       Relative
		categoryWeight float64
		wantAbsolute   Absolute
	}{
		{"60 of 40", 60, 40, 24},
		{"40 of 40", 40, 40, 16},
		{"100 of 60", 100, 60, 60},
		{"zero category", 50, 0, 0},
		{"rounding", 33.33, 30, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.relative.Absolute(tt.categoryWeight)
			if math.Abs(float64(got-tt.wantAbsolute)) > 0.01 {
				t.Errorf("Absolute(%v) = %v, want %v", tt.categoryWeight, got, tt.wantAbsolute)
			}
		})
	}
}

func TestConversionRoundTrip(t *testing.T) {
	criteria := []Criterion{crit("a", 60), crit("b", 25.5), crit("c", 14.5)}
	for _, w := range []float64{10, 25, 40, 75, 100} {
		abs := AbsoluteWeights(criteria, w)
		rel := RelativeWeights(abs, w)
		for i := range criteria {
			if math.Abs(float64(rel[i]-criteria[i].Weight)) > 0.01 {
				t.Errorf("weight %v: criterion %d round-tripped to %v, want %v", w, i, rel[i], criteria[i].Weight)
			}
		}
	}
}

func TestZeroCategoryWeightConversionIsTotal(t *testing.T) {
	abs := Relative(50).Absolute(0)
	if abs != 0 {
		t.Errorf("expected 0 for zero-weight category, got %v", abs)
	}
	rel := Absolute(50).Relative(0)
	if rel != 0 {
		t.Errorf("expected 0 for zero-weight category, got %v", rel)
	}
}

func TestUnallocatedWeight(t *testing.T) {
	c := cat("a", 40, crit("x", 60))
	if got := UnallocatedWeight(c); got != 40 {
		t.Errorf("got %v, want 40", got)
	}
	over := cat("b", 40, crit("x", 60), crit("y", 60))
	if got := UnallocatedWeight(over); got != 0 {
		t.Errorf("over-allocated category: got %v, want 0", got)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := DefaultConfiguration()
	clone := Clone(orig)
	clone[0].Criteria[0].Weight = 99
	clone[0].Criteria[0].Keywords[0] = "mutated"
	if orig[0].Criteria[0].Weight == 99 {
		t.Error("clone aliases criterion weight")
	}
	if orig[0].Criteria[0].Keywords[0] == "mutated" {
		t.Error("clone aliases keyword slice")
	}
}

func TestDistributeEvenly(t *testing.T) {
	tests := []struct {
		n, total int
		want     []int
	}{
		{3, 100, []int{34, 33, 33}},
		{1, 100, []int{100}},
		{4, 100, []int{25, 25, 25, 25}},
		{7, 100, []int{15, 15, 14, 14, 14, 14, 14}},
		{6, 100, []int{17, 17, 17, 17, 16, 16}},
	}
	for _, tt := range tests {
		got := DistributeEvenly(tt.n, tt.total)
		if len(got) != len(tt.want) {
			t.Fatalf("DistributeEvenly(%d, %d) returned %d shares", tt.n, tt.total, len(got))
		}
		sum := 0
		for i, v := range got {
			sum += v
			if v != tt.want[i] {
				t.Errorf("DistributeEvenly(%d, %d) = %v, want %v", tt.n, tt.total, got, tt.want)
				break
			}
		}
		if sum != tt.total {
			t.Errorf("DistributeEvenly(%d, %d) sums to %d", tt.n, tt.total, sum)
		}
	}
}

func TestDistributeEvenlySpread(t *testing.T) {
	for n := 1; n <= 40; n++ {
		shares := DistributeEvenly(n, 100)
		sum, min, max := 0, shares[0], shares[0]
		for _, v := range shares {
			sum += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if sum != 100 {
			t.Errorf("n=%d: sum %d, want 100", n, sum)
		}
		if max-min > 1 {
			t.Errorf("n=%d: spread %d, want <= 1", n, max-min)
		}
	}
}

func TestDistributeEvenlyZeroEntries(t *testing.T) {
	if got := DistributeEvenly(0, 100); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Technical Completeness", "technical_completeness"},
		{"HSE & Compliance", "hse_compliance"},
		{"CAPEX/OPEX Methodology", "capex_opex_methodology"},
		{"  Leading and trailing  ", "leading_and_trailing"},
		{"Ünïcode Name", "n_code_name"},
		{"already_a_slug", "already_a_slug"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Technical Completeness", "HSE & Compliance", "Price (Total)"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestSlugifyLengthCap(t *testing.T) {
	long := "This Display Name Is Far Too Long To Fit Inside The Machine Name Column"
	got := Slugify(long)
	if len(got) > 50 {
		t.Errorf("slug length %d exceeds cap", len(got))
	}
}
