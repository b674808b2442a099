package domain

import "github.com/shopspring/decimal"

// RegionStat aggregates all transactions of one sales region.
// Percentage is the region's share of total revenue in percent; it is
// zero by convention when total revenue is zero.
type RegionStat struct {
	Region           string          `json:"region"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
	Percentage       decimal.Decimal `json:"percentage"`
}

// ProductStat aggregates quantity and revenue for one product name.
type ProductStat struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// CustomerStat summarizes the purchase history of one customer.
// AvgOrderValue is always TotalSpent / PurchaseCount.
// ProductsBought is the sorted, comma-joined set of distinct product
// names the customer purchased.
type CustomerStat struct {
	CustomerID     string          `json:"customer_id"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	PurchaseCount  int             `json:"purchase_count"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
	ProductsBought string          `json:"products_bought"`
}

// DailyStat aggregates one calendar day of sales.
type DailyStat struct {
	Date             string          `json:"date"`
	Revenue          decimal.Decimal `json:"revenue"`
	TransactionCount int             `json:"transaction_count"`
	UniqueCustomers  int             `json:"unique_customers"`
}
