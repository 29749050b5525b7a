package catalog

import "testing"

func TestSKUByID(t *testing.T) {
	sku, err := SKUByID("SKU-003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sku.Name != "Steel Pipe 6\" Schedule 40" {
		t.Errorf("unexpected SKU name: %s", sku.Name)
	}

	if _, err := SKUByID("SKU-999"); err == nil {
		t.Error("unknown SKU should return an error")
	}
}

func TestSupplierForCategory(t *testing.T) {
	s := SupplierForCategory("Electronics")
	if s.ID != "SUP-004" {
		t.Errorf("expected SUP-004 for Electronics, got %s", s.ID)
	}

	// 无匹配品类回退到默认供应商
	s = SupplierForCategory("Unknown Category")
	if s.ID != Suppliers[0].ID {
		t.Errorf("expected fallback to first supplier, got %s", s.ID)
	}
}

func TestSupplierByName(t *testing.T) {
	s, ok := SupplierByName("TechFlow Industries")
	if !ok || s.ID != "SUP-001" {
		t.Errorf("expected SUP-001, got %s (found=%v)", s.ID, ok)
	}
	if _, ok := SupplierByName("Nobody Inc"); ok {
		t.Error("unknown supplier name should not be found")
	}
}

func TestCatalogConsistency(t *testing.T) {
	// 每个SKU的品类都能解析到供应商（目录封闭性）
	for _, sku := range SKUs {
		s := SupplierForCategory(sku.Category)
		if s.ID == "" {
			t.Errorf("no supplier resolvable for category %s", sku.Category)
		}
	}
	if len(ForwarderQuotes) != 3 {
		t.Errorf("expected 3 forwarder quotes, got %d", len(ForwarderQuotes))
	}
}
