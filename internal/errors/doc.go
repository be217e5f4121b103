// Package errors provides structured errors for the nyanko-battle service.
//
// Errors carry a Code, a user-facing message, an optional cause and
// metadata. Wrapping preserves the code of the innermost *Error so a battle
// rule violation raised deep in the engine surfaces unchanged at the gRPC
// boundary.
//
// # Battle codes
//
// The combat engine reports its contract violations with three codes:
//   - ActionNotAllowed: skill on cooldown, target not matching the skill's
//     selector, or an actor that is dead or stunned
//   - InvalidBattleState: a controller method called outside its state
//   - MalformedRoster: empty roster, duplicate ids, or a non-positive health
//     combatant supplied at start
//
// All three are local and synchronous. The caller decides whether to
// re-prompt, abort or restart.
//
//	err := errors.ActionNotAllowedf("skill %s is on cooldown", skillID).
//	    WithMeta("actor_id", actorID)
//
//	if errors.IsActionNotAllowed(err) {
//	    // ask the player again
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("id", def.ID, vb)
//	if err := vb.BuildWithCode(errors.CodeMalformedRoster); err != nil {
//	    return err
//	}
//
// # gRPC
//
// ToGRPCError maps codes onto gRPC status codes and ships the original code
// and metadata as a structpb detail; FromGRPCError restores them on the
// client side.
package errors
