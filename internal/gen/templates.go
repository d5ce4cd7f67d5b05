package gen

import "text/template"

// Templates for the four artifact kinds. Every identifier is precomputed by
// the view builders in render.go; templates never concatenate names.

var transactionTemplate = template.Must(template.New("transaction").Parse(`// Code generated by uvm-testgen. DO NOT EDIT.

` + "`" + `include "uvm_macros.svh"
import uvm_pkg::*;

class {{.ClassName}} extends uvm_sequence_item;

  // Port-backed fields
{{- range .Ports}}
  {{if .Rand}}rand {{end}}{{.Datatype}}{{if gt .Size 1}} [{{.MSB}}:0]{{end}} {{.Name}};
{{- end}}

  // Extra non-port constrained fields
{{- range .ExtraFields}}
  rand int {{.}};
{{- end}}

  // Boolean knobs
{{- range .Flags}}
  rand bit {{.}};
{{- end}}

  ` + "`" + `uvm_object_utils({{.ClassName}})

  function new(string name = "{{.ClassName}}");
    super.new(name);
  endfunction
endclass
`))

var configTemplate = template.Must(template.New("config").Parse(`// Code generated by uvm-testgen. DO NOT EDIT.

` + "`" + `include "uvm_macros.svh"
import uvm_pkg::*;

class {{.ClassName}} extends uvm_object;
  // data_width kept for convenience
  rand int data_width = {{.DataWidth}};

  // Ranged fields (both port-backed and extras)
{{- range .Fields}}
  rand {{.Datatype}} {{.MinName}} = {{.Min}};
  rand {{.Datatype}} {{.MaxName}} = {{.Max}};
{{- end}}

  // Boolean fields
{{- range .Flags}}
  rand {{.Datatype}} {{.Name}} = {{.Literal}};
{{- end}}

  ` + "`" + `uvm_object_utils({{.ClassName}})

  function new(string name = "{{.ClassName}}");
    super.new(name);
  endfunction
endclass
`))

var sequenceTemplate = template.Must(template.New("sequence").Parse(`// Code generated by uvm-testgen. DO NOT EDIT.

` + "`" + `include "uvm_macros.svh"
import uvm_pkg::*;

class {{.ClassName}} extends uvm_sequence#({{.Transaction}});
  {{.Config}} cfg;
  ` + "`" + `uvm_object_utils({{.ClassName}})

  function new(string name = "{{.ClassName}}");
    super.new(name);
  endfunction

  task body();
    {{.Transaction}} tx;

    // Get config from the sequencer scope
    if (!uvm_config_db#({{.Config}})::get(m_sequencer, "", "{{.Config}}", cfg))
      ` + "`" + `uvm_fatal("NO_CFG", "Config not found for {{.ClassName}}")

    if (starting_phase != null) starting_phase.raise_objection(this);
    repeat ({{.NumTransactions}}) begin
      tx = {{.Transaction}}::type_id::create("tx");
      start_item(tx);
      if (!tx.randomize() with {
        // Apply ranges to ALL constrained fields (including input ports)
{{- range .Fields}}
        tx.{{.Name}} inside { [ cfg.{{.MinName}} : cfg.{{.MaxName}} ] };
{{- end}}
        // Apply boolean knobs
{{- range .Flags}}
        tx.{{.Name}} == cfg.{{.Name}};
{{- end}}
      }) begin
        ` + "`" + `uvm_error("RAND_FAIL", "Randomization failed in {{.ClassName}}")
      end
      finish_item(tx);
    end
    if (starting_phase != null) starting_phase.drop_objection(this);
  endtask
endclass
`))

var testTemplate = template.Must(template.New("test").Parse(`// Code generated by uvm-testgen. DO NOT EDIT.

` + "`" + `include "uvm_macros.svh"
import uvm_pkg::*;

class {{.ClassName}} extends uvm_test;
  ` + "`" + `uvm_component_utils({{.ClassName}})

  {{.Env}} env;
{{range .Scenarios}}
  {{.Config}} {{.ConfigHandle}};
{{- end}}

  function new(string name = "{{.ClassName}}", uvm_component parent = null);
    super.new(name, parent);
  endfunction

  function void build_phase(uvm_phase phase);
    super.build_phase(phase);
    env = {{.Env}}::type_id::create("env", this);

    // Create and scope config(s) to the sequencer
{{- range .Scenarios}}
    {{.ConfigHandle}} = {{.Config}}::type_id::create("{{.ConfigHandle}}");
    uvm_config_db#({{.Config}})::set(this, "{{$.SequencerPath}}", "{{.Config}}", {{.ConfigHandle}});
{{- end}}
  endfunction

  task run_phase(uvm_phase phase);
    phase.raise_objection(this);

    // Start all sequences on the real sequencer
{{- range .Scenarios}}
    {{.Sequence}}::type_id::create("{{.SequenceHandle}}").start({{$.SequencerPath}});
{{- end}}

    phase.drop_objection(this);
  endtask
endclass
`))
