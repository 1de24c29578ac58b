package main

import (
	"context"
	"fmt"
	"testing"
)

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return fmt.Errorf("backend down") }

	tests := []struct {
		name    string
		checks  []func(context.Context) error
		wantErr bool
	}{
		{"no checks", nil, false},
		{"all healthy", []func(context.Context) error{ok, ok}, false},
		{"one failing", []func(context.Context) error{ok, fail}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := readiness(tt.checks)()
			if (err != nil) != tt.wantErr {
				t.Errorf("readiness() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
