package addressbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/safar/storefront/internal/provinces"
)

var (
	ErrUnknownProvince = errors.New("unknown province")
	ErrUnknownDistrict = errors.New("unknown district")
	ErrUnknownWard     = errors.New("unknown ward")
)

type LocationSource interface {
	Provinces(ctx context.Context) ([]provinces.Province, error)
	Districts(ctx context.Context, provinceCode provinces.Code) ([]provinces.District, error)
	Wards(ctx context.Context, districtCode provinces.Code) ([]provinces.Ward, error)
}

// Picker walks the province, district, ward cascade. Choosing a level
// clears everything below it.
type Picker struct {
	src       LocationSource
	provinces []provinces.Province
	districts []provinces.District
	wards     []provinces.Ward

	province *provinces.Province
	district *provinces.District
	ward     *provinces.Ward
}

func NewPicker(src LocationSource) *Picker {
	return &Picker{src: src}
}

type Selection struct {
	Province string `json:"province,omitempty"`
	District string `json:"district,omitempty"`
	Ward     string `json:"ward,omitempty"`
}

func (p *Picker) Provinces(ctx context.Context) ([]provinces.Province, error) {
	if p.provinces != nil {
		return p.provinces, nil
	}
	list, err := p.src.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	p.provinces = list
	return list, nil
}

func (p *Picker) Districts() []provinces.District { return p.districts }
func (p *Picker) Wards() []provinces.Ward         { return p.wards }

func (p *Picker) SelectProvince(ctx context.Context, code provinces.Code) ([]provinces.District, error) {
	list, err := p.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	var chosen *provinces.Province
	for i := range list {
		if list[i].Code == code {
			chosen = &list[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvince, code)
	}

	p.province, p.district, p.ward = chosen, nil, nil
	p.districts, p.wards = nil, nil

	districts, err := p.src.Districts(ctx, code)
	if err != nil {
		return nil, err
	}
	p.districts = districts
	return districts, nil
}

func (p *Picker) SelectDistrict(ctx context.Context, code provinces.Code) ([]provinces.Ward, error) {
	var chosen *provinces.District
	for i := range p.districts {
		if p.districts[i].Code == code {
			chosen = &p.districts[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDistrict, code)
	}

	p.district, p.ward = chosen, nil
	p.wards = nil

	wards, err := p.src.Wards(ctx, code)
	if err != nil {
		return nil, err
	}
	p.wards = wards
	return wards, nil
}

func (p *Picker) SelectWard(code provinces.Code) error {
	for i := range p.wards {
		if p.wards[i].Code == code {
			p.ward = &p.wards[i]
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownWard, code)
}

func (p *Picker) Selection() Selection {
	var s Selection
	if p.province != nil {
		s.Province = p.province.Name
	}
	if p.district != nil {
		s.District = p.district.Name
	}
	if p.ward != nil {
		s.Ward = p.ward.Name
	}
	return s
}
