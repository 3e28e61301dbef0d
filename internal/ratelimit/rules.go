package ratelimit

import (
	"fmt"
	"sort"
	"time"
)

// Rule names, one per route.
const (
	RuleLogin      = "auth_login"
	RuleLogout     = "auth_logout"
	RuleMe         = "auth_me"
	RuleNewsList   = "news_list"
	RuleNewsGet    = "news_get"
	RuleNewsCreate = "news_create"
	RuleNewsUpdate = "news_update"
	RuleNewsDelete = "news_delete"
	RuleRoot       = "root"
	RuleHealth     = "health"
)

type Rule struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: %d/%s", r.Name, r.MaxRequests, r.Window)
}

type Rules map[string]Rule

func DefaultRules() Rules {
	rules := Rules{}
	for _, r := range []Rule{
		{Name: RuleLogin, MaxRequests: 5, Window: time.Minute},
		{Name: RuleLogout, MaxRequests: 30, Window: time.Minute},
		{Name: RuleMe, MaxRequests: 60, Window: time.Minute},
		{Name: RuleNewsList, MaxRequests: 100, Window: time.Minute},
		{Name: RuleNewsGet, MaxRequests: 100, Window: time.Minute},
		{Name: RuleNewsCreate, MaxRequests: 20, Window: time.Minute},
		{Name: RuleNewsUpdate, MaxRequests: 30, Window: time.Minute},
		{Name: RuleNewsDelete, MaxRequests: 20, Window: time.Minute},
		{Name: RuleRoot, MaxRequests: 100, Window: time.Minute},
		{Name: RuleHealth, MaxRequests: 200, Window: time.Minute},
	} {
		rules[r.Name] = r
	}
	return rules
}

// Get returns the rule registered under name. Routes are wired with known names,
// so a missing rule is a programming error.
func (r Rules) Get(name string) Rule {
	rule, ok := r[name]
	if !ok {
		panic(fmt.Sprintf("rate limit rule not registered: %s", name))
	}
	return rule
}

// Override replaces the limits of an existing rule.
func (r Rules) Override(name string, maxRequests int, window time.Duration) error {
	if _, ok := r[name]; !ok {
		return fmt.Errorf("unknown rate limit rule: %s", name)
	}
	if maxRequests <= 0 || window <= 0 {
		return fmt.Errorf("rate limit rule %s: limits must be positive", name)
	}
	r[name] = Rule{Name: name, MaxRequests: maxRequests, Window: window}
	return nil
}

func (r Rules) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
