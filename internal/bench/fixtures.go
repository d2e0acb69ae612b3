package bench

import "strings"

// Case is one fixed benchmark question. ExpectedAnswerContains lists the
// acceptable answer substrings; matching any one of them counts as correct.
type Case struct {
	Question               string   `json:"question"`
	ExpectedAnswerContains []string `json:"expected_answer_contains"`
	Description            string   `json:"description"`
}

// EasyCases are straightforward single-operation word problems.
var EasyCases = []Case{
	{
		Question:               "If a train leaves at 14:30 and arrives at 18:05, how long is the journey?",
		ExpectedAnswerContains: []string{"3 hours 35 minutes", "3:35", "215 minutes"},
		Description:            "Basic time difference calculation",
	},
	{
		Question:               "Alice has 3 red apples and twice as many green apples as red. How many apples does she have in total?",
		ExpectedAnswerContains: []string{"9", "nine"},
		Description:            "Simple arithmetic with multiplication",
	},
	{
		Question:               "What is 25 + 37?",
		ExpectedAnswerContains: []string{"62"},
		Description:            "Basic addition",
	},
	{
		Question:               "If a book costs $15 and I have $50, how many books can I buy?",
		ExpectedAnswerContains: []string{"3"},
		Description:            "Division with remainders",
	},
	{
		Question:               "A rectangle has length 8 and width 5. What is its perimeter?",
		ExpectedAnswerContains: []string{"26"},
		Description:            "Geometry - perimeter calculation",
	},
	{
		Question:               "What is 20% of 80?",
		ExpectedAnswerContains: []string{"16"},
		Description:            "Percentage calculation",
	},
	{
		Question:               "If I start with 100 dollars and spend 35 dollars, how much do I have left?",
		ExpectedAnswerContains: []string{"65"},
		Description:            "Basic subtraction",
	},
	{
		Question:               "A meeting starts at 10:00 and lasts 45 minutes. When does it end?",
		ExpectedAnswerContains: []string{"10:45"},
		Description:            "Time addition",
	},
}

// TrickyCases need multi-step reasoning or hide an edge case.
var TrickyCases = []Case{
	{
		Question:               "A meeting needs 60 minutes. There are free slots: 09:00–09:30, 09:45–10:30, 11:00–12:00. Which slots can fit the meeting?",
		ExpectedAnswerContains: []string{"09:45–10:30", "11:00–12:00", "09:45", "11:00"},
		Description:            "Multi-constraint time slot matching",
	},
	{
		Question:               "Bob is twice as old as Alice. In 5 years, Bob will be 25. How old is Alice now?",
		ExpectedAnswerContains: []string{"10"},
		Description:            "Multi-step age problem requiring working backwards",
	},
	{
		Question:               "A basket has apples and oranges. There are 12 fruits total. If there are 3 more apples than oranges, how many oranges are there?",
		ExpectedAnswerContains: []string{"4.5", "cannot", "impossible"},
		Description:            "Problem with non-integer solution (edge case)",
	},
	{
		Question:               "Train A leaves at 14:00 traveling at 60 km/h. Train B leaves at 14:30 from the same station in the same direction at 80 km/h. How long until Train B catches up?",
		ExpectedAnswerContains: []string{"1.5 hours", "90 minutes", "1 hour 30"},
		Description:            "Relative motion problem",
	},
	{
		Question:               "A store offers 20% off, then an additional 10% off the reduced price. What is the total discount on a $100 item?",
		ExpectedAnswerContains: []string{"28", "$28"},
		Description:            "Compound percentage (not additive)",
	},
}

// CheckAnswer reports whether the answer contains any of the expected
// substrings, case-insensitively. An empty expected set never matches.
func CheckAnswer(answer string, expectedContains []string) bool {
	answerLower := strings.ToLower(answer)
	for _, expected := range expectedContains {
		if strings.Contains(answerLower, strings.ToLower(expected)) {
			return true
		}
	}
	return false
}
