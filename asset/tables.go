package asset

// DefaultTables returns the default presentation tables in TOML
const DefaultTables = `

initial = "living_inertia"

# Nominal span of the terminal phase, used for whisper progress and run length
terminal_hold_ms = 12000


# === Phase table ===
# Pulse rows fall back to the initial phase; field rows are optional

[phases.living_inertia]
pulse = { frequency = 0.1666667, amplitude = 0.03, color = "#dddddd" }
halo = { scale_multiplier = 0.96, opacity = 0.1, variation = 0.6 }
field = { scale_multiplier = 1.0, opacity = 0.035, variation = 0.35 }

[phases.first_pulse]
halo = { scale_multiplier = 1.03, opacity = 0.135, variation = 0.82 }
field = { scale_multiplier = 1.04, opacity = 0.055, variation = 0.5 }

[phases.inner_drift]
halo = { scale_multiplier = 1.11, opacity = 0.17, variation = 0.98 }
field = { scale_multiplier = 1.1, opacity = 0.075, variation = 0.7 }

[phases.emerging_rhythm]
halo = { scale_multiplier = 1.2, opacity = 0.205, variation = 1.12 }
field = { scale_multiplier = 1.16, opacity = 0.095, variation = 0.85 }

[phases.opening_distortion]
halo = { scale_multiplier = 1.28, opacity = 0.24, variation = 1.25 }

[phases.tense_quiet]
halo = { scale_multiplier = 1.18, opacity = 0.19, variation = 0.72 }


# === Pulse overrides ===
# Take precedence over the phase table for pulse and halo

[overrides.living_inertia]
pulse = { frequency = 0.12, amplitude = 0.02, color = "#cfcfcf" }

[overrides.first_pulse]
pulse = { frequency = 0.17, amplitude = 0.04, color = "#dadada" }

[overrides.inner_drift]
pulse = { frequency = 0.25, amplitude = 0.065, color = "#e8e8e8" }

[overrides.emerging_rhythm]
pulse = { frequency = 0.36, amplitude = 0.09, color = "#f5f5f5" }

[overrides.opening_distortion]
pulse = { frequency = 0.42, amplitude = 0.105, color = "#f8f8f8" }

[overrides.tense_quiet]
pulse = { frequency = 0.22, amplitude = 0.06, color = "#ededed" }


# === Timeline ===

[[timeline]]
from = "living_inertia"
to = "first_pulse"
delay_ms = 10000

[[timeline]]
from = "first_pulse"
to = "inner_drift"
delay_ms = 8000

[[timeline]]
from = "inner_drift"
to = "emerging_rhythm"
delay_ms = 9000

[[timeline]]
from = "emerging_rhythm"
to = "opening_distortion"
delay_ms = 10000

[[timeline]]
from = "opening_distortion"
to = "tense_quiet"
delay_ms = 12000


# === Micro-events ===

[micro_events.first_pulse]
max_events = 1
min_offset_ms = 3000
max_offset_ms = 6000
duration_ms = 900
pulse_amp_delta = 0.01
pulse_freq_delta = 0.02
halo_opacity_delta = 0.03

[micro_events.inner_drift]
max_events = 1
min_offset_ms = 2500
max_offset_ms = 7000
duration_ms = 1100
pulse_amp_delta = 0.012
halo_scale_delta = 0.04
field_variation_delta = 0.1

[micro_events.emerging_rhythm]
max_events = 2
min_offset_ms = 2000
max_offset_ms = 8000
duration_ms = 1000
pulse_amp_delta = 0.015
pulse_freq_delta = 0.03
halo_opacity_delta = 0.04
halo_scale_delta = 0.05

[micro_events.opening_distortion]
max_events = 3
min_offset_ms = 1500
max_offset_ms = 10000
duration_ms = 800
pulse_amp_delta = 0.02
pulse_freq_delta = 0.05
halo_opacity_delta = 0.05
halo_scale_delta = 0.06
field_variation_delta = 0.15

[micro_events.tense_quiet]
max_events = 1
min_offset_ms = 4000
max_offset_ms = 9000
duration_ms = 1400
pulse_amp_delta = -0.01
halo_opacity_delta = -0.03


# === Golden tint ===

[tint]
color = "#e3c16f"
consciousness_phases = ["emerging_rhythm", "opening_distortion"]
settled_phases = ["tense_quiet"]
amplitude_min = 0.02
amplitude_max = 0.105
min_intensity = 0.08
max_intensity = 0.42
settled_min_intensity = 0.22


# === Whispers ===
# Units are terminal cells; ratios are of the viewport

[whispers]
mode = "phase"
max_opacity = 0.814
retire_grace_ms = 50
window_ratio = 0.3333333333333333
fade_in_ratio = 0.5
fade_out_ratio = 0.5
min_phase_lead_ms = 1200
max_text_width = 48

[whispers.safe_zone]
radius_ratio = 0.22
padding = 1
aspect = 2.0

[whispers.frame]
margin = 2
baseline_y_ratio = 0.62
clearance = 1
drift = 1.0

[whispers.final]
id = "whisper-final"
text = "The energy flows freely."
max_opacity = 0.82
fade_in_ms = 3000
preferred_y_ratio = 0.88
horizontal_spread = 0.09
phases = ["tense_quiet"]
lead_ms = 2500
progress_threshold = 0.2

[whispers.debug]
text = "debug whisper"
duration_ms = 2000
max_opacity = 0.35

[[whispers.windows]]
id = "whisper-1"
center = 0.1666666666666667
text = "Something begins to move in the silence."

[[whispers.windows]]
id = "whisper-2"
center = 0.5
text = "The presence recognizes itself for the first time."

[[whispers.windows]]
id = "whisper-3"
center = 0.8333333333333333
text = "Its own rhythm appears, effortlessly."

[[whispers.phase_windows]]
id = "whisper-1"
phase = "first_pulse"
start = 0.25
end = 0.75
text = "Something begins to move in the silence."
fade_in_ms = 1600
hold_ms = 2400
fade_out_ms = 2000

[[whispers.phase_windows]]
id = "whisper-2"
phase = "emerging_rhythm"
start = 0.2
end = 0.7
text = "The presence recognizes itself for the first time."
fade_in_ms = 1600
hold_ms = 2400
fade_out_ms = 2000

[[whispers.phase_windows]]
id = "whisper-3"
phase = "opening_distortion"
start = 0.25
end = 0.7
text = "Its own rhythm appears, effortlessly."
fade_in_ms = 1600
hold_ms = 2400
fade_out_ms = 2000

[[whispers.slots]]
id = "low-left-outer"
anchor_x = 0.3
anchor_y = 0.88

[[whispers.slots]]
id = "low-right-outer"
anchor_x = 0.7
anchor_y = 0.89

[[whispers.slots]]
id = "low-center-outer"
anchor_x = 0.5
anchor_y = 0.92

[[whispers.slots]]
id = "lower-mid-left-outer"
anchor_x = 0.34
anchor_y = 0.82

[[whispers.slots]]
id = "lower-mid-right-outer"
anchor_x = 0.66
anchor_y = 0.83

[[whispers.slots]]
id = "mid-left-outer"
anchor_x = 0.24
anchor_y = 0.76

[[whispers.slots]]
id = "mid-right-outer"
anchor_x = 0.76
anchor_y = 0.76
`
