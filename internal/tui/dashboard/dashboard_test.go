// ABOUTME: Tests for the dashboard component
// ABOUTME: Covers loading state and rendering of monitoring snapshots

package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/enochcodes/orchestra/cli/internal/client"
)

func TestLoadingState(t *testing.T) {
	d := New(80, 24)
	if !strings.Contains(d.View(), "Loading") {
		t.Error("expected loading placeholder before data arrives")
	}
}

func TestRendersMetricsAndComponents(t *testing.T) {
	d := New(120, 40)
	d.SetData(
		[]client.Metric{
			{Name: "CPU", Value: 42.5, Unit: "%"},
			{Name: "Applications", Value: 7},
			{Name: "Requests", Value: 120, Unit: "rps", History: []float64{80, 95, 120}},
		},
		[]client.Component{
			{Name: "api-server", Status: "running", Healthy: true},
			{Name: "scheduler", Status: "crashed", Healthy: false},
		},
		[]client.Activity{
			{Message: "web deployed", CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)},
		},
	)

	view := d.View()
	for _, want := range []string{"CPU", "Applications", "Requests", "api-server", "scheduler", "web deployed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestActivityListIsCapped(t *testing.T) {
	var activities []client.Activity
	for i := 0; i < 20; i++ {
		activities = append(activities, client.Activity{Message: "event", CreatedAt: time.Now()})
	}

	d := New(100, 40)
	d.SetData(nil, nil, activities)

	if got := strings.Count(d.View(), "event"); got > 8 {
		t.Errorf("expected at most 8 activity lines, got %d", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		metric client.Metric
		want   string
	}{
		{client.Metric{Value: 7}, "7"},
		{client.Metric{Value: 7, Unit: "apps"}, "7 apps"},
		{client.Metric{Value: 42.5, Unit: "%"}, "42.5 %"},
	}
	for _, tc := range cases {
		if got := formatValue(tc.metric); got != tc.want {
			t.Errorf("formatValue(%v) = %q, want %q", tc.metric, got, tc.want)
		}
	}
}
