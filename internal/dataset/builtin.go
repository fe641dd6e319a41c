package dataset

// Finance is the household financial profile used by the finance domain.
func Finance() *Dataset {
	return &Dataset{
		Name:       "finance",
		Attributes: map[string]any{"income": 5000},
		Categories: []Category{
			{Name: "expenses", Fields: []string{"category", "amount"}, Records: []Record{
				{"category": "Rent", "amount": 1500},
				{"category": "Groceries", "amount": 500},
				{"category": "Utilities", "amount": 200},
				{"category": "Transportation", "amount": 300},
				{"category": "Entertainment", "amount": 400},
				{"category": "Misc", "amount": 200},
			}},
			{Name: "bank_accounts", Fields: []string{"name", "balance"}, Records: []Record{
				{"name": "Checking", "balance": 2000},
				{"name": "Savings", "balance": 5000},
			}},
			{Name: "credit_cards", Fields: []string{"name", "balance", "interest_rate"}, Records: []Record{
				{"name": "Card 1", "balance": 1000, "interest_rate": 0.15},
				{"name": "Card 2", "balance": 500, "interest_rate": 0.12},
			}},
			{Name: "investments", Fields: []string{"name", "value"}, Records: []Record{
				{"name": "Stock 1", "value": 2000},
				{"name": "Stock 2", "value": 3000},
				{"name": "Bond 1", "value": 1000},
			}},
			{Name: "financial_goals", Fields: []string{"name", "target", "deadline"}, Records: []Record{
				{"name": "House Down Payment", "target": 10000, "deadline": "2025-06-30"},
				{"name": "Retirement", "target": 500000, "deadline": "2045-12-31"},
			}},
		},
	}
}

// SupplyChain is the product, supplier and order catalog used by the
// supply-chain domain.
func SupplyChain() *Dataset {
	return &Dataset{
		Name: "supply-chain",
		Categories: []Category{
			{Name: "products", Fields: []string{"id", "name", "inventory", "price"}, Records: []Record{
				{"id": 1, "name": "T-Shirt", "inventory": 100, "price": 19.99},
				{"id": 2, "name": "Jeans", "inventory": 75, "price": 49.99},
				{"id": 3, "name": "Dress", "inventory": 50, "price": 79.99},
				{"id": 4, "name": "Sneakers", "inventory": 80, "price": 59.99},
				{"id": 5, "name": "Jacket", "inventory": 60, "price": 99.99},
				{"id": 6, "name": "Shorts", "inventory": 90, "price": 29.99},
				{"id": 7, "name": "Sweater", "inventory": 70, "price": 39.99},
			}},
			{Name: "suppliers", Fields: []string{"id", "name", "lead_time", "reliability"}, Records: []Record{
				{"id": 1, "name": "Supplier A", "lead_time": 5, "reliability": 0.95},
				{"id": 2, "name": "Supplier B", "lead_time": 3, "reliability": 0.56},
				{"id": 3, "name": "Supplier C", "lead_time": 7, "reliability": 0.98},
				{"id": 4, "name": "Supplier D", "lead_time": 4, "reliability": 0.92},
				{"id": 5, "name": "Supplier E", "lead_time": 6, "reliability": 0.96},
				{"id": 6, "name": "Supplier F", "lead_time": 5, "reliability": 0.94},
				{"id": 7, "name": "Supplier G", "lead_time": 4, "reliability": 0.93},
			}},
			{Name: "orders", Fields: []string{"id", "product_id", "quantity", "due_date"}, Records: []Record{
				{"id": 1, "product_id": 1, "quantity": 50, "due_date": "2023-06-30"},
				{"id": 2, "product_id": 2, "quantity": 30, "due_date": "2023-07-15"},
				{"id": 3, "product_id": 3, "quantity": 20, "due_date": "2023-08-10"},
				{"id": 4, "product_id": 4, "quantity": 40, "due_date": "2023-09-05"},
				{"id": 5, "product_id": 5, "quantity": 25, "due_date": "2023-10-20"},
				{"id": 6, "product_id": 6, "quantity": 35, "due_date": "2023-11-01"},
				{"id": 7, "product_id": 7, "quantity": 45, "due_date": "2023-12-15"},
			}},
		},
	}
}
