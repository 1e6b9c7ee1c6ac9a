// Package integrations is the registry of supported AI coding agents (claude,
// codex, pi, opencode). It maps each agent and operating mode to the
// conventional locations where that agent looks for skills and instruction
// files. The agent set is closed: every switch over Agent is exhaustive and
// panics on unknown values, so adding an agent is a visible change here.
package integrations
