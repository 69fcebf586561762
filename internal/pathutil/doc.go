// Package pathutil checks output paths supplied by users before the CLI or
// the MCP server writes a transform result to them.
//
//	abs, err := pathutil.ResolveOutput(userPath)
//	if err != nil {
//		return err
//	}
//	if err := pathutil.CheckDistinct(abs, chainPath, inputPath); err != nil {
//		return err
//	}
package pathutil
