// Package serialization saves and restores trained network parameters.
//
// A checkpoint is a JSON document:
//
//	{
//	  "format_version": 1,
//	  "created_at": "2025-01-02T15:04:05Z",
//	  "architecture": {"inputs": 1, "widths": [3, 1], "activation": "tanh", "output_activation": "identity"},
//	  "total_epochs": 500,
//	  "loss": 0.0123,
//	  "parameters": [0.12, -0.5, ...],
//	  "checksum": "9f86d081..."
//	}
//
// Parameters are listed in the network's Parameters order. The checksum is
// the hex SHA-256 of the parameters encoded as little-endian float64 bits,
// so any edit to the numbers is detected on load.
//
// Example usage:
//
//	ckpt := serialization.NewCheckpoint(model.Config(), model.Parameters())
//	ckpt.TotalEpochs = 500
//	if err := serialization.Save("model.json", ckpt); err != nil {
//	    log.Fatal(err)
//	}
//
//	ckpt, err := serialization.Load("model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ckpt.RestoreInto(model); err != nil {
//	    log.Fatal(err)
//	}
package serialization
