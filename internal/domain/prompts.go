package domain

import "text/template"

// decisionProtocol is appended to orchestrator prompts in structured mode.
const decisionProtocol = `{{define "protocol"}}
Respond with a single JSON object and nothing else.
If the objective has been fully achieved, respond with {"status": "done"}.
Otherwise respond with {"status": "continue", "prompt": "<the next sub-task prompt for the {{.AgentName}}>"}.{{end}}`

// NewPrompts builds the standard role prompts around the given system
// instruction for the worker and the noun used for the final plan.
func NewPrompts(workerInstruction, planNoun, updateNoun string) Prompts {
	decompose := template.Must(template.New("decompose").Parse(decisionProtocol +
		`Based on the following objective and the provided data, please break down the objective into 3-4 sub-tasks and create concise and detailed prompts for the {{.AgentName}} to execute each task. Assess if the objective has been fully achieved based on the sub-task results.` +
		`{{if .Structured}}{{template "protocol" .}}{{else}} If it has, respond with 'Task complete'.{{end}}

Objective: {{.Objective}}

{{.Data}}`))

	check := template.Must(template.New("check").Parse(decisionProtocol +
		`Based on the current sub-task results:

{{.Latest}}

Please assess if the {{.Topic}} task is complete. ` +
		`{{if .Structured}}{{template "protocol" .}}{{else}}If it is, simply respond with 'Task complete'. If not, provide the next sub-task prompt.{{end}}`))

	work := template.Must(template.New("work").Parse(workerInstruction + `
{{.Prompt}}
{{.Data}}`))

	refine := template.Must(template.New("refine").Parse(`Objective: {{.Objective}}

Sub-task results:
{{.Results}}

Please review and refine the sub-task results into a cohesive ` + planNoun + `. Ensure the plan is consistent with the current data. Suggest any necessary updates to the ` + updateNoun + ` based on the optimized plan.

{{.Data}}`))

	return Prompts{Decompose: decompose, Check: check, Work: work, Refine: refine}
}
