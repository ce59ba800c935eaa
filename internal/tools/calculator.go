package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type CalculatorTool struct{}

func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (c *CalculatorTool) Name() string {
	return "basic_calculator"
}

func (c *CalculatorTool) Description() string {
	return `Perform a numeric operation on two numbers. Input is a JSON string such as {"num1": 5, "num2": 3, "operation": "add"}. Supported operations: add, subtract, multiply, divide, modulus, power (or +, -, *, /, %, ^).`
}

// number accepts both JSON numbers and numeric strings.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	*n = number(f)
	return nil
}

func (c *CalculatorTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Num1      number `json:"num1"`
		Num2      number `json:"num2"`
		Operation string `json:"operation"`
	}

	trimmed := strings.TrimSpace(input)
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		// Models sometimes answer with single quotes; tolerate it.
		normalized := strings.ReplaceAll(trimmed, "'", `"`)
		if err := json.Unmarshal([]byte(normalized), &args); err != nil {
			return "Invalid input format. Please provide a valid JSON string with num1, num2 and operation.", nil
		}
	}

	a, b := float64(args.Num1), float64(args.Num2)
	var result float64
	switch strings.ToLower(strings.TrimSpace(args.Operation)) {
	case "add", "+", "plus":
		result = a + b
	case "subtract", "-", "minus":
		result = a - b
	case "multiply", "*", "x", "times":
		result = a * b
	case "divide", "/":
		if b == 0 {
			return "Error: Division by zero is not allowed.", nil
		}
		result = a / b
	case "modulus", "%", "mod":
		if b == 0 {
			return "Error: Modulus by zero is not allowed.", nil
		}
		result = math.Mod(a, b)
	case "power", "^", "**":
		result = math.Pow(a, b)
	default:
		return fmt.Sprintf("Unsupported operation: %q", args.Operation), nil
	}

	return "The answer is: " + strconv.FormatFloat(result, 'f', -1, 64), nil
}
