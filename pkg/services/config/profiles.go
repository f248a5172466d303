package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Registry resolves named database connection profiles from an ini file,
// so the same binary can point at staging or production without flag
// soup. A profile section looks like:
//
//	[prod]
//	host = db.internal
//	port = 5432
//	user = reporting_ro
//	password = ...
//	dbname = hotel
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetDSN(ctx context.Context, profile string) (string, error)
}

type profileRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (pr *profileRegistry) GetDSN(_ context.Context, profile string) (string, error) {
	section, err := pr.cfg.GetSection(profile)
	if err != nil {
		return "", fmt.Errorf("profile %s not found", profile)
	}

	host := section.Key("host").MustString("localhost")
	port := section.Key("port").MustInt(5432)
	user := section.Key("user").String()
	password := section.Key("password").String()
	dbname := section.Key("dbname").String()
	sslmode := section.Key("sslmode").MustString("disable")

	if user == "" || dbname == "" {
		return "", fmt.Errorf("profile %s is missing user or dbname", profile)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s", host, port, user, dbname, sslmode)
	if password != "" {
		dsn += fmt.Sprintf(" password=%s", password)
	}
	return dsn, nil
}
