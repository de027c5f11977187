package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// defaultNonCountryCodes lists the World Bank country codes that identify
// aggregated regions rather than countries (the EU, income groups, North
// Africa and so on). Rows carrying these codes are dropped during loading.
var defaultNonCountryCodes = []string{
	"AFE", "AFW", "ARB", "CEB", "CSS", "EAP", "EAR", "EAS", "ECA", "ECS",
	"EMU", "EUU", "FCS", "HIC", "HPC", "IBD", "IBT", "IDA", "IDB", "IDX",
	"LAC", "LCN", "LDC", "LIC", "LMC", "LMY", "LTE", "MEA", "MIC", "MNA",
	"NAC", "OED", "OSS", "PRE", "PSS", "PST", "SAS", "SSA", "SSF", "SST",
	"TEA", "TEC", "TLA", "TMN", "TSA", "TSS", "UMC", "WLD",
}

// defaultAliases maps known naming discrepancies between the emissions
// and World Bank datasets to one canonical form. Keys and values are
// already canonical in every respect except the alias itself (uppercase,
// single internal spaces), so resolution stays idempotent.
var defaultAliases = map[string]string{
	"ANTIGUA & BARBUDA":                     "ANTIGUA AND BARBUDA",
	"BAHAMAS, THE":                          "BAHAMAS",
	"BOSNIA & HERZEGOVINA":                  "BOSNIA AND HERZEGOVINA",
	"BRUNEI DARUSSALAM":                     "BRUNEI (DARUSSALAM)",
	"CAPE VERDE":                            "CABO VERDE",
	"CHINA (MAINLAND)":                      "CHINA",
	"CONGO, DEM. REP.":                      "DEMOCRATIC REPUBLIC OF THE CONGO (FORMERLY ZAIRE)",
	"CONGO, REP.":                           "CONGO",
	"CZECH REPUBLIC":                        "CZECHIA",
	"COTE D IVOIRE":                         "COTE D'IVOIRE",
	"DEMOCRATIC PEOPLE S REPUBLIC OF KOREA": "NORTH KOREA",
	"EGYPT, ARAB REP.":                      "EGYPT",
	"FAEROE ISLANDS":                        "FAROE ISLANDS",
	"FRANCE (INCLUDING MONACO)":             "FRANCE",
	"GAMBIA, THE":                           "GAMBIA",
	"GUINEA-BISSAU":                         "GUINEA BISSAU",
	"HONG KONG SAR, CHINA":                  "HONG KONG",
	"HONG KONG SPECIAL ADMINSTRATIVE REGION OF CHINA": "HONG KONG",
	"IRAN, ISLAMIC REP.":                              "IRAN",
	"ISLAMIC REPUBLIC OF IRAN":                        "IRAN",
	"ITALY (INCLUDING SAN MARINO)":                    "ITALY",
	"KOREA, DEM. PEOPLE'S REP.":                       "NORTH KOREA",
	"KOREA, REP.":                                     "SOUTH KOREA",
	"KYRGYZ REPUBLIC":                                 "KYRGYZSTAN",
	"LAO PDR":                                         "LAO",
	"LAO PEOPLE S DEMOCRATIC REPUBLIC":                "LAO",
	"LIBYAN ARAB JAMAHIRIYAH":                         "LIBYA",
	"MACAO SAR, CHINA":                                "MACAU",
	"MACAU SPECIAL ADMINSTRATIVE REGION OF CHINA":     "MACAU",
	"MICRONESIA, FED. STS.":                           "FEDERATED STATES OF MICRONESIA",
	"MYANMAR (FORMERLY BURMA)":                        "MYANMAR",
	"NORTH MACEDONIA":                                 "MACEDONIA",
	"PLURINATIONAL STATE OF BOLIVIA":                  "BOLIVIA",
	"REPUBLIC OF CAMEROON":                            "CAMEROON",
	"REPUBLIC OF KOREA":                               "SOUTH KOREA",
	"REPUBLIC OF MOLDOVA":                             "MOLDOVA",
	"REPUBLIC OF SOUTH SUDAN":                         "SOUTH SUDAN",
	"SAINT LUCIA":                                     "ST. LUCIA",
	"SAINT MARTIN (DUTCH PORTION)":                    "SINT MAARTEN (DUTCH PART)",
	"SAO TOME & PRINCIPE":                             "SAO TOME AND PRINCIPE",
	"SLOVAK REPUBLIC":                                 "SLOVAKIA",
	"ST. KITTS-NEVIS":                                 "ST. KITTS AND NEVIS",
	"ST. VINCENT & THE GRENADINES":                    "ST. VINCENT AND THE GRENADINES",
	"TIMOR-LESTE (FORMERLY EAST TIMOR)":               "TIMOR-LESTE",
	"TURKIYE":                                         "TURKEY",
	"UNITED REPUBLIC OF TANZANIA":                     "TANZANIA",
	"UNITED STATES":                                   "UNITED STATES OF AMERICA",
	"WEST BANK AND GAZA":                              "OCCUPIED PALESTINIAN TERRITORY",
	"VIET NAM":                                        "VIETNAM",
	"VENEZUELA, RB":                                   "VENEZUELA",
	"YEMEN, REP.":                                     "YEMEN",
}

// AliasTable resolves country-name aliases and identifies non-country
// rows. It is immutable once built; merge logic only reads it.
type AliasTable struct {
	aliases    map[string]string
	nonCountry map[string]struct{}
}

// aliasFile is the YAML shape of an alias override file.
type aliasFile struct {
	Aliases      map[string]string `yaml:"aliases"`
	NonCountries []string          `yaml:"non_countries"`
}

// DefaultAliasTable returns the built-in alias table.
func DefaultAliasTable() *AliasTable {
	return newAliasTable(defaultAliases, defaultNonCountryCodes)
}

// LoadAliasTable returns the built-in table extended by the entries of a
// YAML override file. Overrides win on key collisions. An empty path
// returns the defaults.
func LoadAliasTable(path string) (*AliasTable, error) {
	table := DefaultAliasTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file %s: %w", path, err)
	}

	var overrides aliasFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}

	for raw, canonical := range overrides.Aliases {
		table.aliases[raw] = canonical
	}
	for _, code := range overrides.NonCountries {
		table.nonCountry[code] = struct{}{}
	}

	return table, nil
}

func newAliasTable(aliases map[string]string, nonCountries []string) *AliasTable {
	t := &AliasTable{
		aliases:    make(map[string]string, len(aliases)),
		nonCountry: make(map[string]struct{}, len(nonCountries)),
	}
	for raw, canonical := range aliases {
		t.aliases[raw] = canonical
	}
	for _, code := range nonCountries {
		t.nonCountry[code] = struct{}{}
	}
	return t
}

// Resolve maps an already-normalized country name to its canonical form.
// Names without an alias entry are returned unchanged.
func (t *AliasTable) Resolve(name string) string {
	if canonical, ok := t.aliases[name]; ok {
		return canonical
	}
	return name
}

// IsNonCountry reports whether a country code identifies an aggregated
// region instead of a country.
func (t *AliasTable) IsNonCountry(code string) bool {
	_, ok := t.nonCountry[code]
	return ok
}

// Len returns the number of alias entries, mostly for logging.
func (t *AliasTable) Len() int {
	return len(t.aliases)
}
