package webstats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Param is one key/value pair of an encoded query. Multi-valued keys repeat.
type Param struct {
	Key   string
	Value string
}

// StatsQuery filters /stats/, /landing_data/ and /events/.
type StatsQuery struct {
	Tags             []string `validate:"dive,required"`
	ExcludeTags      []string `validate:"dive,required"`
	Usernames        []string `validate:"dive,required"`
	VsUsernames      []string `validate:"dive,required"`
	ExcludeUsernames []string `validate:"dive,required"`
	Captains         []string `validate:"dive,required"`
	VsCaptains       []string `validate:"dive,required"`
	ExcludeCaptains  []string `validate:"dive,required"`
	Stadiums         []int    `validate:"dive,min=0,max=6"`
	LimitGames       int      `validate:"min=0"`
	Games            []string `validate:"dive,required,alphanum"`
	CharIDs          []int    `validate:"dive,min=0,max=53"`
	ByUser           bool
	BySwing          bool
	ByChar           bool
	ExcludeNonFair   bool
	ExcludeBatting   bool
	ExcludePitching  bool
	ExcludeFielding  bool
	ExcludeMisc      bool
}

// GamesQuery filters /games/.
type GamesQuery struct {
	Tags             []string `validate:"dive,required"`
	ExcludeTags      []string `validate:"dive,required"`
	Usernames        []string `validate:"dive,required"`
	VsUsernames      []string `validate:"dive,required"`
	ExcludeUsernames []string `validate:"dive,required"`
	Captains         []string `validate:"dive,required"`
	VsCaptains       []string `validate:"dive,required"`
	Stadiums         []int    `validate:"dive,min=0,max=6"`
	LimitGames       int      `validate:"min=0"`
}

type binding struct {
	key string
	set func(raw []string) error
	get func() []string
}

func (q *StatsQuery) bindings() []binding {
	return []binding{
		flag("by_char", &q.ByChar),
		flag("by_swing", &q.BySwing),
		flag("by_user", &q.ByUser),
		texts("captain", &q.Captains),
		ints("char_id", &q.CharIDs),
		flag("exclude_batting", &q.ExcludeBatting),
		texts("exclude_captain", &q.ExcludeCaptains),
		flag("exclude_fielding", &q.ExcludeFielding),
		flag("exclude_misc", &q.ExcludeMisc),
		flag("exclude_nonfair", &q.ExcludeNonFair),
		flag("exclude_pitching", &q.ExcludePitching),
		texts("exclude_tag", &q.ExcludeTags),
		texts("exclude_username", &q.ExcludeUsernames),
		texts("games", &q.Games),
		count("limit_games", &q.LimitGames),
		ints("stadium", &q.Stadiums),
		texts("tag", &q.Tags),
		texts("username", &q.Usernames),
		texts("vs_captain", &q.VsCaptains),
		texts("vs_username", &q.VsUsernames),
	}
}

func (q *GamesQuery) bindings() []binding {
	return []binding{
		texts("captain", &q.Captains),
		texts("exclude_tag", &q.ExcludeTags),
		texts("exclude_username", &q.ExcludeUsernames),
		count("limit_games", &q.LimitGames),
		ints("stadium", &q.Stadiums),
		texts("tag", &q.Tags),
		texts("username", &q.Usernames),
		texts("vs_captain", &q.VsCaptains),
		texts("vs_username", &q.VsUsernames),
	}
}

// StatsParamNames lists the closed set of keys /stats/ accepts.
func StatsParamNames() []string {
	return keys((&StatsQuery{}).bindings())
}

func GamesParamNames() []string {
	return keys((&GamesQuery{}).bindings())
}

// ParseStatsQuery builds a query from raw key/values, rejecting any key outside
// StatsParamNames.
func ParseStatsQuery(values map[string][]string) (StatsQuery, error) {
	var q StatsQuery
	if err := parse(q.bindings(), values); err != nil {
		return StatsQuery{}, err
	}
	return q, q.Validate()
}

func ParseGamesQuery(values map[string][]string) (GamesQuery, error) {
	var q GamesQuery
	if err := parse(q.bindings(), values); err != nil {
		return GamesQuery{}, err
	}
	return q, q.Validate()
}

func (q StatsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return rioerr.InvalidArgument("stats query: %v", err)
	}
	return nil
}

func (q GamesQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return rioerr.InvalidArgument("games query: %v", err)
	}
	return nil
}

// Params returns the set parameters ordered by key.
func (q StatsQuery) Params() []Param {
	return params(q.bindings())
}

func (q GamesQuery) Params() []Param {
	return params(q.bindings())
}

func parse(bs []binding, values map[string][]string) error {
	byKey := make(map[string]binding, len(bs))
	for _, b := range bs {
		byKey[b.key] = b
	}

	var unknown []string
	for key := range values {
		if _, ok := byKey[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return rioerr.InvalidArgument("invalid parameter(s): %s", strings.Join(unknown, ", "))
	}

	for key, raw := range values {
		if err := byKey[key].set(raw); err != nil {
			return err
		}
	}
	return nil
}

func params(bs []binding) []Param {
	var out []Param
	for _, b := range bs {
		for _, v := range b.get() {
			out = append(out, Param{Key: b.key, Value: v})
		}
	}
	return out
}

func keys(bs []binding) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.key
	}
	return out
}

func texts(key string, dst *[]string) binding {
	return binding{
		key: key,
		set: func(raw []string) error {
			for _, v := range raw {
				*dst = append(*dst, strings.TrimSpace(v))
			}
			return nil
		},
		get: func() []string { return *dst },
	}
}

func ints(key string, dst *[]int) binding {
	return binding{
		key: key,
		set: func(raw []string) error {
			for _, v := range raw {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return rioerr.InvalidArgument("%s: %q is not an integer", key, v)
				}
				*dst = append(*dst, n)
			}
			return nil
		},
		get: func() []string {
			out := make([]string, len(*dst))
			for i, n := range *dst {
				out[i] = strconv.Itoa(n)
			}
			return out
		},
	}
}

func count(key string, dst *int) binding {
	return binding{
		key: key,
		set: func(raw []string) error {
			if len(raw) == 0 {
				return nil
			}
			v := raw[len(raw)-1]
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return rioerr.InvalidArgument("%s: %q is not an integer", key, v)
			}
			*dst = n
			return nil
		},
		get: func() []string {
			if *dst <= 0 {
				return nil
			}
			return []string{strconv.Itoa(*dst)}
		},
	}
}

func flag(key string, dst *bool) binding {
	return binding{
		key: key,
		set: func(raw []string) error {
			if len(raw) == 0 {
				*dst = true
				return nil
			}
			v := raw[len(raw)-1]
			if strings.TrimSpace(v) == "" {
				*dst = true
				return nil
			}
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return rioerr.InvalidArgument("%s: %q is not a boolean", key, v)
			}
			*dst = b
			return nil
		},
		get: func() []string {
			if !*dst {
				return nil
			}
			return []string{"1"}
		},
	}
}
