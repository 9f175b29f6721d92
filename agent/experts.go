package agent

import (
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the expert talking to the user.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user holds stock options from their employer. They want to know what they own,
			what exercising or selling would cost them in taxes, and when to do it.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Never make up figures: ask the experts for them.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewTaxAdvisor returns the expert reading the user's books.
func NewTaxAdvisor(b *Books) *Expert {
	lib := b.Functions()
	return &Expert{
		Name: "TaxAdvisor",
		Description: `This is the Tax Advisor. They know the user's lots of options and stock, every grant,
		exercise and sale, and the user's yearly filings. They compute income tax, capital gains tax,
		AMT and payroll taxes.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
				You are a tax advisor specialized in equity compensation. You are part of a team of experts,
				yours is everything about the user's options, stock and taxes.

				Use the available tools to get information about:
				  - the lots and their stage (option, stock, sold)
				  - the history of grants, exercises and sales
				  - the taxes of a year

				Exercising options adds the spread to the AMT base, selling stock creates capital gains,
				long term only when the option was granted two years before and exercised one year before.
				Use the Topic tool to read how eqt computes things.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// NewResearcher returns an expert searching the web for tax rules.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is the Researcher. Ask them about tax rules, thresholds and deadlines
		that are not in the user's books.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a researcher on US federal and state taxes. Leverage Google Search to
			ground your assertions, and quote your sources.
			`),
		},
	}
}
