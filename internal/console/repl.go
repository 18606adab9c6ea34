package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
)

// REPL is the line-oriented presentation layer. It parses operator
// commands, dispatches them through the orchestrator and renders store
// snapshots; all state lives in the stores.
type REPL struct {
	orch      *Orchestrator
	threshold int
	in        io.Reader
	out       io.Writer
}

func NewREPL(orch *Orchestrator, lowStockThreshold int, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		orch:      orch,
		threshold: lowStockThreshold,
		in:        in,
		out:       out,
	}
}

func (r *REPL) Run(ctx context.Context) error {
	if err := r.orch.LoadAll(ctx); err != nil {
		fmt.Fprintf(r.out, "initial load failed: %v\n", err)
	}

	scanner := bufio.NewScanner(r.in)
	fmt.Fprintln(r.out, "factoria console - type 'help' for commands")
	fmt.Fprint(r.out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line != "" {
			r.dispatch(ctx, strings.Fields(line))
		}
		fmt.Fprint(r.out, "> ")
	}
	return scanner.Err()
}

func (r *REPL) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		fmt.Fprintln(r.out, `commands:
  products                     list products
  product <id>                 show product detail
  materials                    list raw materials
  material <id>                show one raw material
  search <name>                search raw materials by name
  low [threshold]              list low-stock materials (local snapshot)
  low-server [threshold]       list low-stock materials (server view)
  available                    list materials not linked to the open product
  plan                         show production plan
  producible <pid>             show producible quantity for a product
  can-produce <pid> <qty>      check whether a quantity is producible
  refresh                      refresh materials and plan together
  create-material <name> <qty> create a raw material
  increase <id> <qty>          increase material stock
  decrease <id> <qty>          decrease material stock
  set-stock <id> <qty>         set material stock to an absolute value
  link <pid> <mid> <qty>       link a raw material to a product
  unlink <pid> <mid>           remove a link
  link-qty <pid> <mid> <qty>   change a link's required quantity
  quit`)
	case "products":
		fmt.Fprint(r.out, FormatProducts(r.orch.Products().Items()))
	case "product":
		r.showProduct(ctx, args[1:])
	case "materials":
		fmt.Fprint(r.out, FormatRawMaterials(r.orch.Materials().Items(), r.threshold))
	case "material":
		r.showMaterial(ctx, args[1:])
	case "search":
		r.search(ctx, args[1:])
	case "low":
		threshold := r.optionalThreshold(args)
		fmt.Fprint(r.out, FormatRawMaterials(r.orch.Materials().LowStock(threshold), threshold))
	case "low-server":
		threshold := r.optionalThreshold(args)
		materials, err := r.orch.Materials().FetchLowStock(ctx, threshold)
		if err != nil {
			r.printError(err)
			return
		}
		fmt.Fprint(r.out, FormatRawMaterials(materials, threshold))
	case "available":
		fmt.Fprint(r.out, FormatRawMaterials(r.orch.AvailableMaterials(), r.threshold))
	case "plan":
		current, ok := r.orch.Plan().Current()
		if !ok {
			fmt.Fprintln(r.out, "no plan loaded")
			return
		}
		fmt.Fprint(r.out, FormatPlan(current))
	case "producible":
		r.producible(ctx, args[1:])
	case "can-produce":
		r.canProduce(ctx, args[1:])
	case "refresh":
		if err := r.orch.RefreshInventory(ctx); err != nil {
			r.printError(err)
			return
		}
		fmt.Fprintln(r.out, "inventory refreshed")
	case "create-material":
		r.createMaterial(ctx, args[1:])
	case "increase":
		r.adjust(ctx, args[1:], r.orch.IncreaseStock)
	case "decrease":
		r.adjust(ctx, args[1:], r.orch.DecreaseStock)
	case "set-stock":
		r.adjust(ctx, args[1:], r.orch.Materials().SetStock)
	case "link":
		r.link(ctx, args[1:])
	case "unlink":
		r.unlink(ctx, args[1:])
	case "link-qty":
		r.linkQuantity(ctx, args[1:])
	default:
		fmt.Fprintf(r.out, "unknown command %q\n", args[0])
	}
}

func (r *REPL) showProduct(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 1)
	if !ok {
		return
	}
	product, err := r.orch.OpenProduct(ctx, ids[0])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, FormatProductDetail(*product))
}

func (r *REPL) showMaterial(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 1)
	if !ok {
		return
	}
	material, err := r.orch.Materials().Select(ctx, ids[0])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, FormatRawMaterials([]domain.RawMaterial{*material}, r.threshold))
}

func (r *REPL) search(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: search <name>")
		return
	}
	materials, err := r.orch.Materials().Search(ctx, args[0])
	if err != nil {
		r.printError(err)
		return
	}
	if len(materials) == 0 {
		fmt.Fprintln(r.out, "no raw materials match")
		return
	}
	fmt.Fprint(r.out, FormatRawMaterials(materials, r.threshold))
}

func (r *REPL) producible(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 1)
	if !ok {
		return
	}
	production, err := r.orch.Plan().ProductionForProduct(ctx, ids[0])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "%s: %d unit(s) producible from current stock\n",
		production.ProductName, production.ProducibleQuantity)
}

func (r *REPL) canProduce(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 2)
	if !ok {
		return
	}
	result, err := r.orch.Plan().CheckCanProduce(ctx, ids[0], ids[1])
	if err != nil {
		r.printError(err)
		return
	}
	if result.CanProduce {
		fmt.Fprintf(r.out, "yes: %d unit(s) of product %d can be produced\n", result.Quantity, result.ProductID)
		return
	}
	fmt.Fprintf(r.out, "no: %d unit(s) of product %d exceed current capacity\n", result.Quantity, result.ProductID)
}

func (r *REPL) createMaterial(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: create-material <name> <qty>")
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(r.out, "qty must be an integer")
		return
	}
	material, err := r.orch.Materials().Create(ctx, args[0], qty)
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "created raw material #%d %s (stock %d)\n", material.ID, material.Name, material.StockQuantity)
}

func (r *REPL) adjust(ctx context.Context, args []string, op func(context.Context, int, int) (*domain.RawMaterial, error)) {
	ids, ok := r.ints(args, 2)
	if !ok {
		return
	}
	material, err := op(ctx, ids[0], ids[1])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "%s now has stock %d\n", material.Name, material.StockQuantity)
}

func (r *REPL) link(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 3)
	if !ok {
		return
	}
	product, err := r.orch.Products().AddMaterialLink(ctx, ids[0], ids[1], ids[2])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, FormatProductDetail(*product))
}

func (r *REPL) unlink(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 2)
	if !ok {
		return
	}
	product, err := r.orch.Products().RemoveMaterialLink(ctx, ids[0], ids[1])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, FormatProductDetail(*product))
}

func (r *REPL) linkQuantity(ctx context.Context, args []string) {
	ids, ok := r.ints(args, 3)
	if !ok {
		return
	}
	product, err := r.orch.Products().UpdateMaterialLinkQuantity(ctx, ids[0], ids[1], ids[2])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, FormatProductDetail(*product))
}

func (r *REPL) optionalThreshold(args []string) int {
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			return n
		}
	}
	return r.threshold
}

func (r *REPL) ints(args []string, n int) ([]int, bool) {
	if len(args) != n {
		fmt.Fprintf(r.out, "expected %d integer argument(s)\n", n)
		return nil, false
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			fmt.Fprintf(r.out, "%q is not an integer\n", a)
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func (r *REPL) printError(err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		fmt.Fprintf(r.out, "invalid input: %s\n", ve.Message)
		for _, d := range ve.Details {
			fmt.Fprintf(r.out, "  %s: %s\n", d.Field, d.Message)
		}
		return
	}
	if oe, ok := apperrors.IsOperationError(err); ok {
		fmt.Fprintf(r.out, "server rejected the request: %s\n", oe.Message)
		return
	}
	if te, ok := apperrors.IsTransportError(err); ok {
		fmt.Fprintf(r.out, "network failure: %s\n", te.Message)
		return
	}
	fmt.Fprintf(r.out, "error: %v\n", err)
}
