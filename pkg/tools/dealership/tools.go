// Package dealership provides the built-in tools the sales assistant can
// invoke: inventory lookup and review video search.
package dealership

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/tools"
)

func init() {
	tools.Register(tools.ToolDefinition{
		Name: tools.FetchCars,
		Description: "Fetch car inventory details based on filter criteria such as make, model, " +
			"model year range, price range, mileage, color, stock number, or VIN.",
	}, NewFetchCarsTool)

	tools.Register(tools.ToolDefinition{
		Name:        tools.FindCarReviewVideos,
		Description: "Search for car review videos on YouTube based on make, model, and optionally year.",
	}, NewFindCarReviewVideosTool)
}

// NewFetchCarsTool creates the inventory lookup tool.
func NewFetchCarsTool(tc *tools.ToolContext) tool.InvokableTool {
	return utils.NewTool(&schema.ToolInfo{
		Name: tools.FetchCars,
		Desc: "Fetch car inventory details based on filter criteria. Users can provide filters " +
			"such as make, model, model year range, price range, mileage, color, stock number, or VIN for a precise lookup. " +
			"If a parameter is not applicable, please provide -1 for numeric values or an empty string for text values.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"make":         {Type: schema.String, Required: true, Desc: "Car manufacturer (e.g., Toyota, Ford)"},
			"model":        {Type: schema.String, Required: true, Desc: "Car model (e.g., Camry, Mustang)"},
			"year":         {Type: schema.Integer, Desc: "Minimum car model year. Use -1 to indicate no minimum."},
			"max_year":     {Type: schema.Integer, Desc: "Maximum car model year. Use -1 to indicate no maximum."},
			"price":        {Type: schema.Number, Desc: "Minimum price. Use -1 to indicate no minimum."},
			"max_price":    {Type: schema.Number, Desc: "Maximum price. Use -1 to indicate no maximum."},
			"mileage":      {Type: schema.Integer, Desc: "Maximum mileage. Use -1 to indicate no maximum."},
			"color":        {Type: schema.String, Desc: "Car color. Use empty string to indicate no color filter."},
			"stock_number": {Type: schema.String, Desc: "Exact stock number. Use empty string to indicate no stock number filter."},
			"vin":          {Type: schema.String, Desc: "Exact VIN. Use empty string to indicate no VIN filter."},
		}),
	}, func(ctx context.Context, filter *models.CarFilter) (string, error) {
		cars, err := tc.Inventory.SearchCars(*filter)
		if err != nil {
			return "", fmt.Errorf("fetch cars: %w", err)
		}
		b, err := json.Marshal(map[string]any{"cars": cars, "count": len(cars)})
		if err != nil {
			return "", fmt.Errorf("encode cars: %w", err)
		}
		return string(b), nil
	})
}

// NewFindCarReviewVideosTool creates the review video search tool. Search
// failures are embedded in the result payload, not returned as errors.
func NewFindCarReviewVideosTool(tc *tools.ToolContext) tool.InvokableTool {
	return utils.NewTool(&schema.ToolInfo{
		Name: tools.FindCarReviewVideos,
		Desc: "Search for car review videos on YouTube based on make, model, and optionally year.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"car_make":  {Type: schema.String, Required: true, Desc: "The make of the car (e.g., Toyota, Ford)"},
			"car_model": {Type: schema.String, Required: true, Desc: "The model of the car (e.g., Camry, Mustang)"},
			"year":      {Type: schema.Integer, Desc: "Optional year of the car model"},
		}),
	}, func(ctx context.Context, req *models.ReviewVideoRequest) (string, error) {
		result := tc.Videos.Search(ctx, req.CarMake, req.CarModel, req.Year)
		b, err := json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("encode videos: %w", err)
		}
		return string(b), nil
	})
}
