package agent

import "fmt"

// Prompt templates are versioned constants. The natural-language text is the
// protocol with the model; nothing downstream depends on parsing the model's
// prose beyond the JSON extraction contract.

const plannerSystemPrompt = `You are a problem-solving planner. Your job is to create clear,
logical plans for solving word problems involving math, time, logic, and constraints.

For each question:
1. Parse and understand what's being asked
2. Identify the given information
3. Determine the operations needed
4. Plan how to arrive at the answer
5. Consider edge cases or validation needs

Keep plans concise (5-8 steps typically) but thorough.`

const plannerPromptTemplate = `Given the following question, create a detailed step-by-step plan to solve it.

Your plan should:
- Break down the problem into clear, logical steps
- Identify what information needs to be extracted
- Specify any calculations or logic needed
- Include a verification step at the end

Output your plan as a numbered list of steps. Be concise but complete.

Question: %s

Plan:`

const executorSystemPrompt = `You are a precise problem solver. Execute plans carefully, showing
all intermediate work. Always output valid JSON in the exact format requested.
Be thorough in calculations and clear in explanations.`

const executorPromptTemplate = `You are solving the following question by following a specific plan.

Question: %s

Plan to follow:
%s

Execute each step of the plan carefully. Show your intermediate work and calculations.

IMPORTANT: Respond ONLY with valid JSON. Do not include any explanatory text before or after the JSON.

Provide your response in this exact JSON format:
{
    "answer": "<final short answer>",
    "reasoning": "<brief explanation of how you got the answer>",
    "intermediate_work": "<detailed step-by-step work showing calculations>"
}

Make sure to:
- Follow the plan exactly
- Show all intermediate calculations
- Double-check arithmetic
- Provide a clear, concise final answer
- OUTPUT ONLY THE JSON, NOTHING ELSE

JSON Response:`

const verifierSystemPrompt = `You are a rigorous verifier. Re-solve problems independently to check
answers. Verify arithmetic, logic, and constraints. Output only valid JSON in the requested format.
Be thorough and catch any errors or inconsistencies.`

const verifierPromptTemplate = `You are verifying a solution to a problem. Check if the solution is correct and consistent.

Question: %s

Proposed Solution:
Answer: %s
Reasoning: %s
Work: %s

Perform the following checks:
1. **Correctness Check**: Re-solve the problem independently. Does your answer match?
2. **Arithmetic Check**: Verify all calculations in the intermediate work.
3. **Logic Check**: Is the reasoning sound and does it follow logically?
4. **Constraint Check**: Are all constraints from the question satisfied?
5. **Units Check**: Are units consistent and correct?

IMPORTANT: Respond ONLY with valid JSON array. Do not include any explanatory text before or after the JSON.

Provide your verification as this exact JSON array format:
[
    {
        "check_name": "Correctness Check",
        "passed": true,
        "details": "explanation here"
    },
    {
        "check_name": "Arithmetic Check",
        "passed": true,
        "details": "explanation here"
    }
]

Be strict but fair. If something is wrong, explain what and why.
OUTPUT ONLY THE JSON ARRAY, NOTHING ELSE

JSON Array:`

func plannerPrompt(question string) string {
	return fmt.Sprintf(plannerPromptTemplate, question)
}

func executorPrompt(question, plan string) string {
	return fmt.Sprintf(executorPromptTemplate, question, plan)
}

func verifierPrompt(question string, sol Solution) string {
	return fmt.Sprintf(verifierPromptTemplate, question, sol.Answer, sol.Reasoning, sol.IntermediateWork)
}
