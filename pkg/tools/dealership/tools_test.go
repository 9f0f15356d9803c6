package dealership

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/tools"
)

type stubInventory struct {
	lastFilter models.CarFilter
	cars       []models.CarInventory
}

func (s *stubInventory) SearchCars(filter models.CarFilter) ([]models.CarInventory, error) {
	s.lastFilter = filter
	return s.cars, nil
}

type stubVideos struct {
	result models.VideoSearchResult
}

func (s *stubVideos) Search(ctx context.Context, carMake, carModel string, year int) models.VideoSearchResult {
	return s.result
}

func TestInitRegistersBothTools(t *testing.T) {
	for _, name := range []string{tools.FetchCars, tools.FindCarReviewVideos} {
		if !tools.IsRegistered(name) {
			t.Fatalf("tool %q is not registered", name)
		}
	}
	if len(tools.ListToolDefinitions()) < 2 {
		t.Fatalf("ListToolDefinitions() = %v, want at least 2", tools.ListToolDefinitions())
	}
}

func TestFetchCarsToolDefaultsOmittedFilters(t *testing.T) {
	inv := &stubInventory{cars: []models.CarInventory{
		{StockNumber: "N1002", Make: "Nissan", Model: "Kicks", Year: 2025, Price: 21999},
	}}
	tc := &tools.ToolContext{Inventory: inv, Videos: &stubVideos{}}

	tl, err := tools.GetTool(tools.FetchCars, tc)
	if err != nil {
		t.Fatalf("GetTool() error = %v", err)
	}

	out, err := tl.InvokableRun(context.Background(), `{"make":"Nissan","model":""}`)
	if err != nil {
		t.Fatalf("InvokableRun() error = %v", err)
	}

	if inv.lastFilter.Make != "Nissan" {
		t.Fatalf("filter.Make = %q, want Nissan", inv.lastFilter.Make)
	}
	if inv.lastFilter.Year != -1 || inv.lastFilter.MaxPrice != -1 || inv.lastFilter.Mileage != -1 {
		t.Fatalf("omitted numeric filters = %+v, want -1 sentinels", inv.lastFilter)
	}

	var payload struct {
		Cars  []models.CarInventory `json:"cars"`
		Count int                   `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if payload.Count != 1 || payload.Cars[0].Model != "Kicks" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestFindCarReviewVideosToolEmbedsErrors(t *testing.T) {
	tc := &tools.ToolContext{
		Inventory: &stubInventory{},
		Videos:    &stubVideos{result: models.VideoSearchResult{Videos: []models.Video{}, Error: "quota exceeded"}},
	}

	tl, err := tools.GetTool(tools.FindCarReviewVideos, tc)
	if err != nil {
		t.Fatalf("GetTool() error = %v", err)
	}

	out, err := tl.InvokableRun(context.Background(), `{"car_make":"Nissan","car_model":"Kicks"}`)
	if err != nil {
		t.Fatalf("InvokableRun() error = %v, search failures must not fail the call", err)
	}

	var result models.VideoSearchResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.Error != "quota exceeded" {
		t.Fatalf("result.Error = %q, want quota exceeded", result.Error)
	}
}

func TestGetToolUnknownName(t *testing.T) {
	if _, err := tools.GetTool("nonexistent", &tools.ToolContext{}); err == nil {
		t.Fatal("GetTool(nonexistent) error = nil, want error")
	}
}
