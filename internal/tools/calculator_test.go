package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorTool_Execute(t *testing.T) {
	calc := NewCalculatorTool()
	ctx := context.Background()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"add", `{"num1": 5, "num2": 3, "operation": "add"}`, "The answer is: 8"},
		{"symbol", `{"num1": 10, "num2": 4, "operation": "-"}`, "The answer is: 6"},
		{"multiply strings", `{"num1": "2.5", "num2": "4", "operation": "multiply"}`, "The answer is: 10"},
		{"divide", `{"num1": 7, "num2": 2, "operation": "divide"}`, "The answer is: 3.5"},
		{"modulus", `{"num1": 7, "num2": 4, "operation": "%"}`, "The answer is: 3"},
		{"power", `{"num1": 2, "num2": 10, "operation": "power"}`, "The answer is: 1024"},
		{"single quotes", `{'num1': 1, 'num2': 2, 'operation': 'add'}`, "The answer is: 3"},
		{"divide by zero", `{"num1": 1, "num2": 0, "operation": "divide"}`, "Error: Division by zero is not allowed."},
		{"modulus by zero", `{"num1": 1, "num2": 0, "operation": "modulus"}`, "Error: Modulus by zero is not allowed."},
		{"unknown op", `{"num1": 1, "num2": 2, "operation": "sqrt"}`, `Unsupported operation: "sqrt"`},
		{"apostrophe in valid json", `{"num1": 1, "num2": 2, "operation": "don't"}`, `Unsupported operation: "don't"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.Execute(ctx, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculatorTool_InvalidInput(t *testing.T) {
	got, err := NewCalculatorTool().Execute(context.Background(), "five plus three")
	require.NoError(t, err)
	assert.Contains(t, got, "Invalid input format")
}

func TestReverserTool_Execute(t *testing.T) {
	rev := NewReverserTool()

	got, err := rev.Execute(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "The reversed string is: olleh", got)

	got, err = rev.Execute(context.Background(), "héllo 世界")
	require.NoError(t, err)
	assert.Equal(t, "The reversed string is: 界世 olléh", got)
}
