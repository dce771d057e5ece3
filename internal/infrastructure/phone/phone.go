// Package phone formats user phone numbers for display.
package phone

import (
	"context"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/usecase/interfaces"
)

type Formatter struct {
	region string
}

func NewFormatter(defaultRegion string) *Formatter {
	return &Formatter{region: strings.ToUpper(defaultRegion)}
}

// Format returns raw in international format. Numbers without a country code are
// read in the default region; unparseable input is returned unchanged.
func (f *Formatter) Format(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	num, err := phonenumbers.Parse(trimmed, f.region)
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// Directory formats the phones of every profile returned by next.
type Directory struct {
	next      interfaces.IUserDirectory
	formatter *Formatter
}

var _ interfaces.IUserDirectory = (*Directory)(nil)

func NewDirectory(next interfaces.IUserDirectory, formatter *Formatter) *Directory {
	return &Directory{next: next, formatter: formatter}
}

func (d *Directory) GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.UserProfile, error) {
	profiles, err := d.next.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, p := range profiles {
		if p.Phone != nil {
			formatted := d.formatter.Format(*p.Phone)
			p.Phone = &formatted
			profiles[id] = p
		}
	}
	return profiles, nil
}
