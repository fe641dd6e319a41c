package domain

import "github.com/yubzen/relay/internal/dataset"

func init() {
	Register(Finance())
	Register(SupplyChain())
}

func Finance() *Domain {
	return &Domain{
		Name:            "finance",
		Topic:           "financial optimization",
		AgentName:       "financial agent",
		Description:     "Household financial planning against an income, expense and goal profile",
		ObjectivePrompt: "Please enter your financial optimization objective: ",
		PlanTitle:       "Optimized Financial Plan",
		ReportPrefix:    "financial_optimization",
		Data:            dataset.Finance,
		Serialize:       SnapshotSerializer("User Data"),
		Prompts: NewPrompts(
			"You are an expert financial agent. Your goal is to execute financial analysis tasks accurately and provide detailed explanations of your reasoning.",
			"optimized financial plan",
			"user data",
		),
	}
}

func SupplyChain() *Domain {
	return &Domain{
		Name:            "supply-chain",
		Topic:           "supply chain optimization",
		AgentName:       "supply chain agent",
		Description:     "Inventory, supplier and order planning against a product catalog",
		ObjectivePrompt: "Please enter your supply chain optimization objective: ",
		PlanTitle:       "Optimized Supply Chain Plan",
		ReportPrefix:    "supply_chain_optimization",
		Data:            dataset.SupplyChain,
		Serialize:       SectionSerializer("\n"),
		Prompts: NewPrompts(
			"You are an expert supply chain agent. Your goal is to execute supply chain optimization tasks accurately and provide detailed explanations of your reasoning.",
			"optimized supply chain plan",
			"database",
		),
	}
}
