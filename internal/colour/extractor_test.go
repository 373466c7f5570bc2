package colour

import (
	"errors"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		want    Algorithm
		wantErr bool
	}{
		{name: "mediancut", want: AlgorithmMedianCut},
		{name: "median-cut", want: AlgorithmMedianCut},
		{name: "color-thief", want: AlgorithmMedianCut},
		{name: "kmeans", want: AlgorithmKMeans},
		{name: "K-Means", want: AlgorithmKMeans},
		{name: "okolors", want: AlgorithmKMeans},
		{name: "", wantErr: true},
		{name: "octree", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("ParseAlgorithm(%q) error = %v, want ErrConfiguration", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewQuantizer(t *testing.T) {
	cfg := DefaultConfig()

	q, err := NewQuantizer(cfg, nil)
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}
	if _, ok := q.(*MedianCutQuantizer); !ok {
		t.Errorf("NewQuantizer(mediancut) = %T, want *MedianCutQuantizer", q)
	}

	cfg.Algorithm = AlgorithmKMeans
	q, err = NewQuantizer(cfg, nil)
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}
	if _, ok := q.(*KMeansQuantizer); !ok {
		t.Errorf("NewQuantizer(kmeans) = %T, want *KMeansQuantizer", q)
	}

	cfg.Algorithm = "dominant"
	if _, err := NewQuantizer(cfg, nil); err == nil {
		t.Error("NewQuantizer(dominant) expected error, got nil")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateDelta(t *testing.T) {
	tests := []struct {
		value   float64
		wantErr bool
	}{
		{value: -1.0},
		{value: 0},
		{value: 0.5},
		{value: 1.0},
		{value: 1.0001, wantErr: true},
		{value: -2, wantErr: true},
	}

	for _, tt := range tests {
		if err := ValidateDelta(tt.value); (err != nil) != tt.wantErr {
			t.Errorf("ValidateDelta(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}
