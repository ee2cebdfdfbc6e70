// Package seeds loads fixture data from YAML into the database.
package seeds

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/EmpoweredVote/roster-backend/internal/addresses"
	"github.com/EmpoweredVote/roster-backend/internal/designations"
	"github.com/EmpoweredVote/roster-backend/internal/logutil"
	"github.com/EmpoweredVote/roster-backend/internal/sampleusers"
	"github.com/goccy/go-yaml"
	"gorm.io/gorm"
)

type File struct {
	Designations []Designation `yaml:"designations"`
	SampleUsers  []SampleUser  `yaml:"sample_users"`
	Addresses    []Address     `yaml:"addresses"`
}

type Designation struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// SampleUser names its designation by title.
type SampleUser struct {
	Name        string `yaml:"name"`
	Age         int    `yaml:"age"`
	Designation string `yaml:"designation"`
}

type Address struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type Counts struct {
	Designations int
	SampleUsers  int
	Addresses    int
}

func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("could not read %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(raw, &f, yaml.Strict()); err != nil {
		return File{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return f, nil
}

// SeedAll inserts what is missing from f. Sample users go in before addresses
// so that address creation links them. Rows already present (designations by
// title, sample users by name, addresses by name and text) are skipped, which
// makes a second run a no-op.
func SeedAll(ctx context.Context, conn *gorm.DB, f File) (Counts, error) {
	var c Counts
	log := logutil.GetOrDefault(ctx)

	titles := map[string]uint{}
	designationRepo := designations.NewRepository(conn)
	for _, sd := range f.Designations {
		in := designations.Input{Title: sd.Title, Description: sd.Description}
		var existing designations.Designation
		err := conn.WithContext(ctx).First(&existing, "title = ?", in.Title).Error
		if err == nil {
			log.Info().Str("title", in.Title).Msg("designation exists, skipping")
			titles[in.Title] = existing.ID
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c, fmt.Errorf("lookup designation %q: %w", in.Title, err)
		}

		d, err := designationRepo.Create(ctx, in)
		if err != nil {
			return c, fmt.Errorf("seed designation %q: %w", in.Title, err)
		}
		titles[d.Title] = d.ID
		c.Designations++
	}

	userRepo := sampleusers.NewRepository(conn)
	for _, su := range f.SampleUsers {
		id, ok := titles[su.Designation]
		if !ok {
			return c, fmt.Errorf("sample user %q: unknown designation %q", su.Name, su.Designation)
		}

		var n int64
		if err := conn.WithContext(ctx).Model(&sampleusers.SampleUser{}).Where("name = ?", su.Name).Count(&n).Error; err != nil {
			return c, fmt.Errorf("lookup sample user %q: %w", su.Name, err)
		}
		if n > 0 {
			log.Info().Str("name", su.Name).Msg("sample user exists, skipping")
			continue
		}

		if _, err := userRepo.Create(ctx, sampleusers.Input{Name: su.Name, Age: su.Age, DesignationID: id}); err != nil {
			return c, fmt.Errorf("seed sample user %q: %w", su.Name, err)
		}
		c.SampleUsers++
	}

	addressRepo := addresses.NewRepository(conn)
	for _, sa := range f.Addresses {
		in := addresses.Input{Name: sa.Name, Address: sa.Address}
		var n int64
		if err := conn.WithContext(ctx).Model(&addresses.Address{}).
			Where("name = ? AND address = ?", in.Name, in.Address).
			Count(&n).Error; err != nil {
			return c, fmt.Errorf("lookup address %q: %w", in.Name, err)
		}
		if n > 0 {
			log.Info().Str("name", in.Name).Msg("address exists, skipping")
			continue
		}

		if _, err := addressRepo.Create(ctx, in); err != nil {
			return c, fmt.Errorf("seed address %q: %w", in.Name, err)
		}
		c.Addresses++
	}

	return c, nil
}
