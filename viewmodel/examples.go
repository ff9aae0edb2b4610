package viewmodel

import "github.com/ramlo/ramlo/raml"

// responseExamples returns one example per body of every response. A
// response without a body contributes an example with an empty response.
// A method without responses has no examples at all (nil).
func responseExamples(m *raml.Method) []ResponseExample {
	var examples []ResponseExample
	for _, resp := range m.Responses {
		if resp == nil {
			continue
		}
		if len(resp.Body) == 0 {
			examples = append(examples, ResponseExample{
				Code:        resp.Code,
				Description: resp.Description,
				Response:    "",
			})
			continue
		}
		for _, body := range resp.Body {
			if body == nil {
				continue
			}
			examples = append(examples, ResponseExample{
				Code:        resp.Code,
				Description: resp.Description,
				Response:    exampleOf(body),
			})
		}
	}
	return examples
}
