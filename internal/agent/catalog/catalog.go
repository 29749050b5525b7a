package catalog

import (
	"fmt"

	"github.com/bitfantasy/orderpilot/internal/agent/entity"
)

// SKUs 演示用库存单元目录
var SKUs = []entity.SKU{
	{ID: "SKU-001", Name: "Industrial Valve Assembly", Category: "Mechanical Parts", Unit: "pcs", CurrentStock: 120, ReorderPoint: 200, SafetyStock: 80, LeadTimeDays: 21, LastPrice: 245.00},
	{ID: "SKU-002", Name: "Hydraulic Pump Unit", Category: "Mechanical Parts", Unit: "pcs", CurrentStock: 45, ReorderPoint: 100, SafetyStock: 30, LeadTimeDays: 35, LastPrice: 1820.00},
	{ID: "SKU-003", Name: "Steel Pipe 6\" Schedule 40", Category: "Raw Materials", Unit: "meters", CurrentStock: 580, ReorderPoint: 1000, SafetyStock: 300, LeadTimeDays: 14, LastPrice: 42.50},
	{ID: "SKU-004", Name: "Control Panel PCB Board", Category: "Electronics", Unit: "pcs", CurrentStock: 200, ReorderPoint: 350, SafetyStock: 100, LeadTimeDays: 28, LastPrice: 89.00},
	{ID: "SKU-005", Name: "Bearing Assembly SKF-6205", Category: "Mechanical Parts", Unit: "pcs", CurrentStock: 800, ReorderPoint: 500, SafetyStock: 150, LeadTimeDays: 10, LastPrice: 18.75},
	{ID: "SKU-006", Name: "Chemical Solvent Grade A", Category: "Chemicals", Unit: "liters", CurrentStock: 150, ReorderPoint: 400, SafetyStock: 100, LeadTimeDays: 18, LastPrice: 32.00},
}

// Suppliers 演示用供应商目录
var Suppliers = []entity.Supplier{
	{ID: "SUP-001", Name: "TechFlow Industries", Country: "Germany", Rating: 4.5, Categories: []string{"Mechanical Parts"}, PaymentTerms: "Net 30", AvgLeadDays: 21, Email: "orders@techflow.de"},
	{ID: "SUP-002", Name: "Shanghai Precision Co.", Country: "China", Rating: 4.2, Categories: []string{"Mechanical Parts", "Raw Materials"}, PaymentTerms: "Net 45", AvgLeadDays: 35, Email: "sales@shanghaiprec.cn"},
	{ID: "SUP-003", Name: "Midwest Steel Supply", Country: "USA", Rating: 4.7, Categories: []string{"Raw Materials"}, PaymentTerms: "Net 15", AvgLeadDays: 7, Email: "procurement@midweststeel.com"},
	{ID: "SUP-004", Name: "NexGen Electronics Ltd", Country: "Taiwan", Rating: 4.3, Categories: []string{"Electronics"}, PaymentTerms: "Net 30", AvgLeadDays: 28, Email: "po@nexgenelec.tw"},
	{ID: "SUP-005", Name: "ChemPure International", Country: "Netherlands", Rating: 4.6, Categories: []string{"Chemicals"}, PaymentTerms: "Net 60", AvgLeadDays: 18, Email: "orders@chempure.nl"},
}

// ForwarderQuotes 货代基础报价（流程中重置status后复制使用）
var ForwarderQuotes = []entity.ForwarderQuote{
	{ID: "FQ-001", ForwarderName: "Kuehne+Nagel", Mode: entity.ForwarderModeSea, Cost: 2800, TransitDays: 28, Status: entity.QuoteStatusPending},
	{ID: "FQ-002", ForwarderName: "DHL Global Forwarding", Mode: entity.ForwarderModeAir, Cost: 6200, TransitDays: 5, Status: entity.QuoteStatusPending},
	{ID: "FQ-003", ForwarderName: "Maersk Logistics", Mode: entity.ForwarderModeSea, Cost: 2450, TransitDays: 32, Status: entity.QuoteStatusPending},
}

// SKUByID 按ID查找SKU。目录是封闭的，查不到说明调用方传入了非法引用。
func SKUByID(id string) (entity.SKU, error) {
	for _, s := range SKUs {
		if s.ID == id {
			return s, nil
		}
	}
	return entity.SKU{}, fmt.Errorf("unknown SKU %q", id)
}

// SupplierByID 按ID查找供应商
func SupplierByID(id string) (entity.Supplier, error) {
	for _, s := range Suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return entity.Supplier{}, fmt.Errorf("unknown supplier %q", id)
}

// SupplierByName 按名称查找供应商
func SupplierByName(name string) (entity.Supplier, bool) {
	for _, s := range Suppliers {
		if s.Name == name {
			return s, true
		}
	}
	return entity.Supplier{}, false
}

// SupplierForCategory 返回覆盖指定品类的第一个供应商，无匹配时回退到默认供应商。
// 查找是全函数，不会失败。
func SupplierForCategory(category string) entity.Supplier {
	for _, s := range Suppliers {
		for _, c := range s.Categories {
			if c == category {
				return s
			}
		}
	}
	return Suppliers[0]
}
