package tools

import "context"

type ReverserTool struct{}

func NewReverserTool() *ReverserTool {
	return &ReverserTool{}
}

func (r *ReverserTool) Name() string {
	return "reverse_string"
}

func (r *ReverserTool) Description() string {
	return "Reverse the given text. Input is the plain text to reverse."
}

func (r *ReverserTool) Execute(ctx context.Context, input string) (string, error) {
	runes := []rune(input)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return "The reversed string is: " + string(runes), nil
}
