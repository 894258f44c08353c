package addressbook

import (
	"context"
	"errors"
	"testing"

	"github.com/safar/storefront/internal/provinces"
)

type fakeLocations struct {
	districtCalls int
}

func (f *fakeLocations) Provinces(context.Context) ([]provinces.Province, error) {
	return []provinces.Province{{Name: "Hà Nội", Code: "1"}, {Name: "Hồ Chí Minh", Code: "79"}}, nil
}

func (f *fakeLocations) Districts(_ context.Context, code provinces.Code) ([]provinces.District, error) {
	f.districtCalls++
	if code == "1" {
		return []provinces.District{{Name: "Ba Đình", Code: "1"}, {Name: "Hoàn Kiếm", Code: "2"}}, nil
	}
	return []provinces.District{{Name: "Quận 1", Code: "760"}}, nil
}

func (f *fakeLocations) Wards(_ context.Context, code provinces.Code) ([]provinces.Ward, error) {
	return []provinces.Ward{{Name: "Phúc Xá", Code: "1"}, {Name: "Trúc Bạch", Code: "4"}}, nil
}

func TestCascadeResetsLowerLevels(t *testing.T) {
	ctx := context.Background()
	p := NewPicker(&fakeLocations{})

	if _, err := p.SelectProvince(ctx, "1"); err != nil {
		t.Fatalf("SelectProvince: %v", err)
	}
	if _, err := p.SelectDistrict(ctx, "1"); err != nil {
		t.Fatalf("SelectDistrict: %v", err)
	}
	if err := p.SelectWard("4"); err != nil {
		t.Fatalf("SelectWard: %v", err)
	}

	want := Selection{Province: "Hà Nội", District: "Ba Đình", Ward: "Trúc Bạch"}
	if got := p.Selection(); got != want {
		t.Fatalf("Expected %+v, got %+v", want, got)
	}

	if _, err := p.SelectDistrict(ctx, "2"); err != nil {
		t.Fatalf("SelectDistrict: %v", err)
	}
	if got := p.Selection(); got.Ward != "" || got.District != "Hoàn Kiếm" {
		t.Errorf("Expected ward cleared on district change, got %+v", got)
	}

	if _, err := p.SelectProvince(ctx, "79"); err != nil {
		t.Fatalf("SelectProvince: %v", err)
	}
	if got := p.Selection(); got.District != "" || got.Ward != "" || len(p.Wards()) != 0 {
		t.Errorf("Expected district and ward cleared on province change, got %+v", got)
	}
}

func TestDistrictMustBelongToProvince(t *testing.T) {
	ctx := context.Background()
	p := NewPicker(&fakeLocations{})

	if _, err := p.SelectDistrict(ctx, "1"); !errors.Is(err, ErrUnknownDistrict) {
		t.Errorf("Expected ErrUnknownDistrict before a province is chosen, got %v", err)
	}

	p.SelectProvince(ctx, "79")
	if _, err := p.SelectDistrict(ctx, "1"); !errors.Is(err, ErrUnknownDistrict) {
		t.Errorf("Expected ErrUnknownDistrict for another province's district, got %v", err)
	}
	if _, err := p.SelectProvince(ctx, "999"); !errors.Is(err, ErrUnknownProvince) {
		t.Errorf("Expected ErrUnknownProvince, got %v", err)
	}
}
