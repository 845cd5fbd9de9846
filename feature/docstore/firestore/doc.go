// Package firestore is the Cloud Firestore document store.
//
// Documents are read with a full collection scan, written with merge-set
// (firestore.MergeAll) and deleted by path. Field values map to the codec's
// typed values as follows:
//
//	string             <-> value.String
//	int64              <-> value.Integer
//	bool               <-> value.Boolean
//	nil                <-> value.Null
//	[]interface{}      <-> value.Array
//	float64            ->  value.Unsupported{Tag: "doubleValue"}
//	time.Time          ->  value.Unsupported{Tag: "timestampValue"}
//	map[string]any     ->  value.Unsupported{Tag: "mapValue"}
//	[]byte             ->  value.Unsupported{Tag: "bytesValue"}
//	*DocumentRef       ->  value.Unsupported{Tag: "referenceValue"}
//	anything else      ->  value.Unsupported{Tag: <Go type name>}
//
// Unsupported values keep the native value, so writing them back is lossless.
package firestore
